package command

import (
	"fmt"

	"github.com/atomicstack/popup-menu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a queued command invocation.
type Request struct {
	ID      string
	Label   string
	Handler func() tea.Msg
}

// Bus collects work requested by activated menu commands until the UI
// drains it into Bubble Tea commands.
type Bus struct {
	pending []Request
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Enqueue records req for the next Drain.
func (b *Bus) Enqueue(req Request) {
	events.Command.Queue(req.ID, req.Label)
	b.pending = append(b.pending, req)
}

// Len reports the number of queued requests.
func (b *Bus) Len() int {
	return len(b.pending)
}

// Drain turns every queued request into a command and empties the queue.
func (b *Bus) Drain() tea.Cmd {
	if len(b.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(b.pending))
	for _, req := range b.pending {
		cmds = append(cmds, b.Execute(req))
	}
	b.pending = b.pending[:0]
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler()
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
