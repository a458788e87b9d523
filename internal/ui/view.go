package ui

import (
	"strings"

	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const emptyMenuText = "(no entries)"

type styledLine struct {
	text  string
	style *lipgloss.Style
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	if m.header != "" {
		lines = append(lines, styledLine{text: m.header, style: m.styles.Header})
	}

	m.refreshContent()
	row := m.layout.SelectedRow()
	for i, text := range m.content {
		style := m.styles.Item
		if i == row {
			style = m.styles.SelectedItem
		}
		lines = append(lines, styledLine{text: text, style: style})
	}
	if m.menu.Len() == 0 {
		empty := styledLine{text: emptyMenuText, style: m.styles.Info}
		if len(m.content) > 0 {
			lines[len(lines)-len(m.content)] = empty
		} else {
			lines = append(lines, empty)
		}
	}

	lines = append(lines, m.statusLine())
	if m.showFooter {
		lines = append(lines, styledLine{text: m.keys.footer(), style: m.styles.Footer})
	}
	return renderLines(applyWidth(lines, m.width))
}

// refreshContent re-reads the layout only after it signalled a redraw.
func (m *Model) refreshContent() {
	if !m.stale && m.content != nil {
		return
	}
	m.content = m.layout.Lines()
	m.stale = false
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: m.errMsg, style: m.styles.Error}
	case m.typeAhead.Query() != "":
		return styledLine{text: "› " + m.typeAhead.Query(), style: m.styles.TypeAhead}
	case m.backendErr != "":
		return styledLine{text: m.backendErr, style: m.styles.Warning}
	case m.infoMsg != "":
		return styledLine{text: m.infoMsg, style: m.styles.Info}
	}
	return styledLine{}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	cfg := m.layoutConfig(m.layout.Config())
	events.Layout.Resize(cfg.MaxWidth, cfg.Capacity)
	m.layout.SetConfig(cfg)
	return nil
}

// layoutConfig sizes base to the popup.
func (m *Model) layoutConfig(base layout.Config) layout.Config {
	base.MaxWidth = m.width
	base.Capacity = m.maxVisibleLines()
	return base
}

// maxVisibleLines returns the rows left for menu lines once the header,
// status and footer rows are reserved, or -1 when the height is unknown.
func (m *Model) maxVisibleLines() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // header + status
	if m.showFooter {
		used++
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if lipgloss.Width(text) > width {
			text = truncate.StringWithTail(text, uint(width), "…")
		}
		result[i] = styledLine{text: text, style: line.style}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}
