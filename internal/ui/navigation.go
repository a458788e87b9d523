package ui

import (
	"time"

	"github.com/atomicstack/popup-menu/internal/logging/events"
	uistate "github.com/atomicstack/popup-menu/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type typeAheadExpiredMsg struct {
	seq int
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		return m.handleBackKey()
	case key.Matches(keyMsg, m.keys.Activate):
		return m.handleActivateKey()
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(m.layout.MoveUp)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(m.layout.MoveDown)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursorPage(-1)
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursorPage(1)
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursor(func() bool { return m.layout.MoveTo(0) })
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursor(func() bool { return m.layout.MoveTo(m.layout.LineCount() - 1) })
	case keyMsg.Type == tea.KeyRunes || keyMsg.Type == tea.KeySpace:
		return m.handleTypeAhead(keyMsg)
	}
	return nil
}

func (m *Model) handleBackKey() tea.Cmd {
	if m.menu.Depth() <= 1 {
		return tea.Quit
	}
	m.menu.Back()
	return nil
}

func (m *Model) handleActivateKey() tea.Cmd {
	m.typeAhead.Reset()
	m.errMsg = ""
	m.layout.Activate()
	return m.bus.Drain()
}

func (m *Model) moveCursor(move func() bool) {
	m.typeAhead.Reset()
	move()
}

// moveCursorPage moves by one viewport height, stopping at either end.
func (m *Model) moveCursorPage(dir int) {
	m.typeAhead.Reset()
	_, line := m.layout.Selected()
	if line < 0 {
		return
	}
	step := m.layout.Config().Capacity
	if step <= 0 {
		step = m.layout.LineCount()
	}
	target := line + dir*step
	target = max(0, min(target, m.layout.LineCount()-1))
	m.layout.MoveTo(target)
}

func (m *Model) handleTypeAhead(msg tea.KeyMsg) tea.Cmd {
	text := string(msg.Runes)
	if msg.Type == tea.KeySpace {
		text = " "
	}
	query := m.typeAhead.Add(text, m.now())
	labels := make([]string, m.menu.Len())
	for i := range labels {
		labels[i] = m.menu.At(i).Label()
	}
	idx := uistate.BestMatchIndex(labels, query)
	events.Menu.TypeAhead(query, idx)
	if idx >= 0 {
		m.layout.SelectItem(m.menu.At(idx))
	}
	m.stale = true
	return m.expireTypeAhead()
}

func (m *Model) expireTypeAhead() tea.Cmd {
	timeout := m.typeAhead.Timeout
	if timeout <= 0 {
		return nil
	}
	seq := m.typeAhead.Seq()
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return typeAheadExpiredMsg{seq: seq}
	})
}

func (m *Model) handleTypeAheadExpiredMsg(msg tea.Msg) tea.Cmd {
	expired, ok := msg.(typeAheadExpiredMsg)
	if !ok {
		return nil
	}
	if m.typeAhead.Expire(expired.seq) {
		m.stale = true
	}
	return nil
}
