package layout

import "strings"

// GetContent returns the visible lines joined by '\n'. When the capacity is
// positive the result always holds exactly that many lines, padded with
// empty ones past the end of the content.
func (m *Menu) GetContent() string {
	m.flushPending()
	capacity := m.cfg.Capacity

	var sb strings.Builder
	shown := 0
	switch {
	case len(m.lines) == 0:
	case m.clipped():
		first := min(m.offset, len(m.lines)-1)
		stop := first + capacity
		end := len(m.buf) - 1
		if stop < len(m.lines) {
			end = m.lines[stop].start - 1
		}
		sb.WriteString(string(m.buf[m.lines[first].start:end]))
		shown = min(capacity, len(m.lines)-first)
	default:
		sb.WriteString(string(m.buf[:len(m.buf)-1]))
		shown = len(m.lines)
	}
	if shown == 0 && capacity > 0 {
		shown = 1
	}
	for ; shown < capacity; shown++ {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Lines returns the visible lines as a slice, padded like GetContent.
func (m *Menu) Lines() []string {
	content := m.GetContent()
	if content == "" && m.cfg.Capacity <= 0 && len(m.lines) == 0 {
		return nil
	}
	return strings.Split(content, "\n")
}
