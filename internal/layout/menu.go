// Package layout turns the current view of a menu.Model into wrapped,
// marked and viewport-clipped text.
//
// A Menu keeps the rendered lines in a single rune buffer together with a
// record per line pointing back at the entry that produced it. Cursor moves
// patch glyphs in that buffer directly; label changes re-wrap only the entry
// that changed; anything that alters the line structure rebuilds the buffer.
// Pending work is tracked as a FlushLevel and carried out by the next call
// that needs up-to-date lines (GetContent, a move, Activate).
package layout

import (
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
)

// lookahead is the number of lines kept visible below the selection while
// scrolling down.
const lookahead = 1

// FlushLevel is the recompute owed before the next read.
type FlushLevel int

const (
	FlushNone FlushLevel = iota
	// FlushViewport means entry text changed but the line structure holds.
	FlushViewport
	// FlushFull means the line set must be rebuilt from the view.
	FlushFull
)

func (f FlushLevel) String() string {
	switch f {
	case FlushViewport:
		return "viewport"
	case FlushFull:
		return "full"
	default:
		return "none"
	}
}

// line maps one rendered line back to its entry. Offsets index Menu.buf.
type line struct {
	start  int
	end    int
	item   menu.Node
	cursor int
	marker int
}

// Menu is the render state of one presentation of a menu.Model. It is not
// safe for concurrent use and must not be shared between output targets.
type Menu struct {
	model *menu.Model
	cfg   Config

	buf   []rune
	lines []line

	scratch      []rune
	scratchLines []line

	selected      int
	selectedItem  menu.Node
	selectedIndex int
	offset        int

	flush      FlushLevel
	dirty      map[menu.Node]struct{}
	remembered map[*menu.Group]menu.Node

	redraw menu.Signal[struct{}]
	subs   []func()
}

// New attaches a render state to model.
func New(model *menu.Model, cfg Config) *Menu {
	m := &Menu{
		model:         model,
		cfg:           cfg.clone(),
		selectedIndex: -1,
		flush:         FlushFull,
		dirty:         make(map[menu.Node]struct{}),
		remembered:    make(map[*menu.Group]menu.Node),
	}
	m.subs = append(m.subs,
		model.OnNavigated(m.handleNavigated),
		model.OnViewChanged(m.handleViewChanged),
		model.OnItemChanged(m.handleItemChanged),
	)
	return m
}

// Close detaches the menu from its model.
func (m *Menu) Close() {
	for _, cancel := range m.subs {
		cancel()
	}
	m.subs = nil
}

// Config returns the active configuration.
func (m *Menu) Config() Config {
	return m.cfg.clone()
}

// SetConfig swaps the configuration. Width, padding and glyph changes rebuild
// the lines; a capacity change only re-clips the viewport.
func (m *Menu) SetConfig(cfg Config) {
	next := cfg.clone()
	full := m.cfg.affectsLines(next)
	resized := m.cfg.Capacity != next.Capacity
	m.cfg = next
	switch {
	case full:
		m.raise(FlushFull)
	case resized:
		m.raise(FlushViewport)
	default:
		return
	}
	m.requestRedraw()
}

// OnRedraw fires whenever something visible may have changed.
func (m *Menu) OnRedraw(fn func()) (cancel func()) {
	return m.redraw.Subscribe(func(struct{}) { fn() })
}

// Pending reports the recompute owed before the next read.
func (m *Menu) Pending() FlushLevel {
	return m.flush
}

// LineCount returns the number of rendered lines.
func (m *Menu) LineCount() int {
	m.flushPending()
	return len(m.lines)
}

// Offset returns the index of the first visible line.
func (m *Menu) Offset() int {
	m.flushPending()
	return m.offset
}

// Selected returns the selected entry and line, or (nil, -1) for an empty view.
func (m *Menu) Selected() (menu.Node, int) {
	m.flushPending()
	if len(m.lines) == 0 {
		return nil, -1
	}
	return m.selectedItem, m.selected
}

// SelectedRow returns the viewport row of the selected line, or -1 when it
// is not visible.
func (m *Menu) SelectedRow() int {
	m.flushPending()
	if len(m.lines) == 0 {
		return -1
	}
	if !m.clipped() {
		return m.selected
	}
	row := m.selected - m.offset
	if row < 0 || row >= m.cfg.Capacity {
		return -1
	}
	return row
}

// MoveDown selects the next line. It reports false at the last line.
func (m *Menu) MoveDown() bool {
	m.flushPending()
	return m.moveTo(m.selected + 1)
}

// MoveUp selects the previous line. It reports false at the first line.
func (m *Menu) MoveUp() bool {
	m.flushPending()
	return m.moveTo(m.selected - 1)
}

// MoveTo selects the given line. Out of range lines are ignored. A target
// above the viewport becomes its top row.
func (m *Menu) MoveTo(idx int) bool {
	m.flushPending()
	return m.moveTo(idx)
}

// SelectItem moves the selection to the first line of n, scrolling like
// MoveTo.
func (m *Menu) SelectItem(n menu.Node) bool {
	m.flushPending()
	first, _, ok := m.runOf(n)
	if !ok {
		return false
	}
	return m.moveTo(first)
}

// Activate hands the selected entry to the model.
func (m *Menu) Activate() {
	m.flushPending()
	if len(m.lines) == 0 {
		return
	}
	m.model.Select(m.lines[m.selected].item)
}

func (m *Menu) raise(level FlushLevel) {
	if level > m.flush {
		m.flush = level
	}
}

func (m *Menu) requestRedraw() {
	events.Layout.Redraw(m.flush.String())
	m.redraw.Emit(struct{}{})
}

func (m *Menu) handleNavigated(nav menu.Navigation) {
	if nav.From != nil && m.selectedItem != nil {
		m.remembered[nav.From] = m.selectedItem
	}
	m.selectedItem = nil
	m.selectedIndex = -1
	m.selected = 0
	m.offset = 0
	if nav.From != nil && m.model.IndexOf(nav.From) >= 0 {
		m.selectedItem = nav.From
	} else if prev, ok := m.remembered[nav.To]; ok && m.model.IndexOf(prev) >= 0 {
		m.selectedItem = prev
	}
	m.buf = m.buf[:0]
	m.lines = m.lines[:0]
	clear(m.dirty)
	m.raise(FlushFull)
	m.requestRedraw()
}

func (m *Menu) handleViewChanged(*menu.Group) {
	m.raise(FlushFull)
	m.requestRedraw()
}

func (m *Menu) handleItemChanged(n menu.Node) {
	first, last, ok := m.runOf(n)
	if !ok {
		if len(m.lines) > 0 {
			m.raise(FlushFull)
		}
		m.requestRedraw()
		return
	}
	m.dirty[n] = struct{}{}
	m.raise(FlushViewport)
	if m.runVisible(first, last) {
		m.requestRedraw()
	}
}

// clipped reports whether the viewport shows only part of the lines.
func (m *Menu) clipped() bool {
	return m.cfg.Capacity > 0 && m.cfg.Capacity < len(m.lines)
}

func (m *Menu) runVisible(first, last int) bool {
	if !m.clipped() {
		return true
	}
	return last >= m.offset && first < m.offset+m.cfg.Capacity
}

// runOf returns the line range produced by n.
func (m *Menu) runOf(n menu.Node) (first, last int, ok bool) {
	if n == nil {
		return 0, 0, false
	}
	for i, l := range m.lines {
		if l.item != n {
			continue
		}
		last = i
		for last+1 < len(m.lines) && m.lines[last+1].item == n {
			last++
		}
		return i, last, true
	}
	return 0, 0, false
}

// runAround returns the line range of the entry owning line idx.
func (m *Menu) runAround(idx int) (first, last int) {
	item := m.lines[idx].item
	first, last = idx, idx
	for first > 0 && m.lines[first-1].item == item {
		first--
	}
	for last+1 < len(m.lines) && m.lines[last+1].item == item {
		last++
	}
	return first, last
}

func (m *Menu) moveTo(next int) bool {
	if len(m.lines) == 0 || next < 0 || next >= len(m.lines) || next == m.selected {
		return false
	}
	prev := m.selected
	m.paintCursor(prev, false)
	if prevItem, nextItem := m.lines[prev].item, m.lines[next].item; prevItem != nextItem {
		m.paintMarkers(prev, false)
		m.paintMarkers(next, true)
		m.selectedItem = nextItem
		m.selectedIndex = m.model.IndexOf(nextItem)
	}
	m.selected = next
	m.paintCursor(next, true)
	m.scroll()
	events.Layout.Cursor(m.selected, m.offset)
	m.requestRedraw()
	return true
}

func (m *Menu) paintCursor(idx int, on bool) {
	at := m.lines[idx].cursor
	if at < 0 {
		return
	}
	if on {
		m.buf[at] = m.cfg.Cursor
	} else {
		m.buf[at] = m.cfg.PaddingChar
	}
}

func (m *Menu) paintMarkers(idx int, selected bool) {
	first, last := m.runAround(idx)
	glyph := m.cfg.marker(m.model.KindOf(m.lines[idx].item), selected)
	for i := first; i <= last; i++ {
		m.buf[m.lines[i].marker] = glyph
	}
}

// scroll moves the viewport so the selection is visible with one line of
// lookahead below it. Moving above the viewport puts the selection on the top
// row with no lookahead above it, so a jump upwards lands the selection there
// rather than keeping the previous offset.
func (m *Menu) scroll() {
	if !m.clipped() {
		m.offset = 0
		return
	}
	capacity := m.cfg.Capacity
	if m.selected < m.offset {
		m.offset = m.selected
	}
	ahead := lookahead
	if ahead > capacity-1 {
		ahead = capacity - 1
	}
	if m.selected+ahead >= m.offset+capacity {
		m.offset = m.selected - (capacity - 1 - ahead)
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
