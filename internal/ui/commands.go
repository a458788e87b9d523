package ui

import (
	"github.com/atomicstack/popup-menu/internal/definition"
	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// actionResultMsg reports the outcome of an activated command entry.
type actionResultMsg struct {
	id   string
	kind definition.ActionKind
	info string
	err  error
}

// enqueueAction is the registry's Invoker. Activation happens inside
// layout.Activate, so the work is only queued here and drained by the key
// handler.
func (m *Model) enqueueAction(a definition.Action) {
	m.bus.Enqueue(command.Request{
		ID:      a.ID,
		Label:   a.Label,
		Handler: m.actionHandler(a),
	})
}

func (m *Model) actionHandler(a definition.Action) func() tea.Msg {
	socket := m.socketPath
	return func() tea.Msg {
		if a.Kind == definition.ActionNone {
			return nil
		}
		info, err := a.Exec(socket)
		return actionResultMsg{id: a.ID, kind: a.Kind, info: info, err: err}
	}
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(actionResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.infoMsg = ""
		logging.Error(result.err)
		events.Action.Error(result.err)
		return nil
	}
	events.Action.Success(result.info)
	switch result.kind {
	case definition.ActionInfo:
		m.errMsg = ""
		m.infoMsg = result.info
		return nil
	case definition.ActionExit:
		return tea.Quit
	}
	if m.verbose {
		m.infoMsg = result.info
		return nil
	}
	return tea.Quit
}
