package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ id string }

func TestDrainEmptyBus(t *testing.T) {
	if cmd := New().Drain(); cmd != nil {
		t.Fatalf("expected nil command for an empty bus")
	}
}

func TestDrainSingleRequest(t *testing.T) {
	b := New()
	b.Enqueue(Request{ID: "a", Label: "A", Handler: func() tea.Msg { return doneMsg{id: "a"} }})
	if b.Len() != 1 {
		t.Fatalf("expected 1 queued request, got %d", b.Len())
	}
	cmd := b.Drain()
	if b.Len() != 0 {
		t.Fatalf("expected queue emptied, got %d", b.Len())
	}
	msg, ok := cmd().(doneMsg)
	if !ok || msg.id != "a" {
		t.Fatalf("expected doneMsg for a, got %#v", msg)
	}
}

func TestDrainBatchesRequests(t *testing.T) {
	b := New()
	b.Enqueue(Request{ID: "a", Handler: func() tea.Msg { return doneMsg{id: "a"} }})
	b.Enqueue(Request{ID: "b", Handler: func() tea.Msg { return doneMsg{id: "b"} }})
	batch, ok := b.Drain()().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("expected a batch of 2, got %#v", batch)
	}
	if msg := batch[1]().(doneMsg); msg.id != "b" {
		t.Fatalf("expected b second, got %s", msg.id)
	}
}

func TestExecuteNilHandlerAndNilResult(t *testing.T) {
	b := New()
	if msg := b.Execute(Request{ID: "skip"})(); msg != nil {
		t.Fatalf("expected nil for a missing handler, got %#v", msg)
	}
	if msg := b.Execute(Request{ID: "noop", Handler: func() tea.Msg { return nil }})(); msg != nil {
		t.Fatalf("expected nil for a no-op handler, got %#v", msg)
	}
}
