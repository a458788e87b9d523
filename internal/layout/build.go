package layout

import (
	"slices"

	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/wordwrap"
)

// flushPending performs the recompute recorded in m.flush.
func (m *Menu) flushPending() {
	switch m.flush {
	case FlushFull:
		m.rebuild()
	case FlushViewport:
		m.applyDirty()
	}
}

// rebuild regenerates every line from the current view. The selected entry
// survives when it is still in the view; otherwise the entry now sitting at
// its old position takes over, and failing that the first entry.
func (m *Menu) rebuild() {
	intra := 0
	if m.selectedItem != nil && m.selected < len(m.lines) && m.lines[m.selected].item == m.selectedItem {
		first, _ := m.runAround(m.selected)
		intra = m.selected - first
	}
	if m.selectedItem != nil && m.model.IndexOf(m.selectedItem) < 0 {
		m.selectedItem = nil
		intra = 0
		if n := m.model.Len(); n > 0 && m.selectedIndex >= 0 {
			m.selectedItem = m.model.At(min(m.selectedIndex, n-1))
		}
	}

	m.buf = m.buf[:0]
	m.lines = m.lines[:0]
	m.selected = 0
	m.selectedIndex = -1
	for i := 0; i < m.model.Len(); i++ {
		item := m.model.At(i)
		if m.selectedItem == nil {
			m.selectedItem = item
			intra = 0
		}
		first := len(m.lines)
		selected := item == m.selectedItem
		m.buf, m.lines = m.appendEntry(m.buf, m.lines, item, selected)
		if selected {
			m.selected = first + min(intra, len(m.lines)-1-first)
			m.selectedIndex = i
		}
	}
	if len(m.lines) == 0 {
		m.selectedItem = nil
		m.offset = 0
	} else {
		m.paintCursor(m.selected, true)
		m.scroll()
	}
	clear(m.dirty)
	events.Layout.Flush(FlushFull.String(), len(m.lines))
	m.flush = FlushNone
}

// applyDirty re-wraps the entries whose labels changed and splices their
// text into the buffer. An entry whose line count changed, or that can no
// longer be located, forces a full rebuild instead.
func (m *Menu) applyDirty() {
	for item := range m.dirty {
		first, last, ok := m.runOf(item)
		if !ok {
			m.rebuild()
			return
		}
		m.scratch, m.scratchLines = m.appendEntry(m.scratch[:0], m.scratchLines[:0], item, item == m.selectedItem)
		if len(m.scratchLines) != last-first+1 {
			m.rebuild()
			return
		}
		m.splice(first, last)
	}
	clear(m.dirty)
	if len(m.lines) > 0 {
		m.paintCursor(m.selected, true)
	}
	m.scroll()
	events.Layout.Flush(FlushViewport.String(), len(m.lines))
	m.flush = FlushNone
}

// splice replaces lines first..last with the lines held in scratch and
// shifts the offsets of every later line.
func (m *Menu) splice(first, last int) {
	oldStart := m.lines[first].start
	oldEnd := m.lines[last].end + 1
	delta := len(m.scratch) - (oldEnd - oldStart)
	m.buf = slices.Replace(m.buf, oldStart, oldEnd, m.scratch...)
	for i, rec := range m.scratchLines {
		m.lines[first+i] = shift(rec, oldStart)
	}
	if delta == 0 {
		return
	}
	for i := last + 1; i < len(m.lines); i++ {
		m.lines[i] = shift(m.lines[i], delta)
	}
}

func shift(l line, by int) line {
	l.start += by
	l.end += by
	l.marker += by
	if l.cursor >= 0 {
		l.cursor += by
	}
	return l
}

// appendEntry renders the lines of item onto buf, recording one line per
// wrapped segment. Every line ends with '\n'. The cursor cell is left blank.
func (m *Menu) appendEntry(buf []rune, recs []line, item menu.Node, selected bool) ([]rune, []line) {
	kind := m.model.KindOf(item)
	label := item.Label()
	breakChars := m.cfg.BreakChars
	marker := m.cfg.marker(kind, selected)

	emit := func(text, suffix string) {
		rec := line{start: len(buf), item: item, cursor: -1}
		for i := 0; i < m.cfg.Padding; i++ {
			if i == 0 {
				rec.cursor = len(buf)
			}
			buf = append(buf, m.cfg.PaddingChar)
		}
		rec.marker = len(buf)
		buf = append(buf, marker)
		buf = appendText(buf, text)
		buf = appendText(buf, suffix)
		rec.end = len(buf)
		buf = append(buf, '\n')
		recs = append(recs, rec)
	}

	pending, have := "", false
	for seg := range wordwrap.Wrap(label, m.cfg.wrapWidth(kind), breakChars) {
		if have {
			emit(pending, "")
		}
		pending, have = wordwrap.Trim(label, seg, breakChars), true
	}
	emit(pending, m.cfg.suffix(kind))
	return buf, recs
}

// appendText copies text onto buf, flattening line breaks so a record always
// covers exactly one buffer line.
func appendText(buf []rune, text string) []rune {
	for _, r := range text {
		if r == '\n' || r == '\r' {
			r = ' '
		}
		buf = append(buf, r)
	}
	return buf
}
