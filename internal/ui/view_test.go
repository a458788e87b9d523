package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/popup-menu/internal/testutil"
)

func TestViewGoldenRoot(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{Height: 6}))
	testutil.AssertGolden(t, "root.golden", h.View())
}

func TestViewGoldenSubmenuPadsViewport(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{Height: 6}))
	h.Key("enter")
	testutil.AssertGolden(t, "sessions.golden", h.View())
}

func TestViewGoldenWrapsToWidth(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{Width: 14, Height: 6}))
	testutil.AssertGolden(t, "wrapped.golden", h.View())
}

func TestViewEmptyGroupShowsOnlyBackEntry(t *testing.T) {
	def := mustDefinition(t, "title: Empty\nitems:\n  - label: Only\n    items: []\n")
	h := NewHarness(newTestModel(t, Options{Definition: def}))
	h.Key("enter")
	h.Key("down")
	if got := h.View(); got != "Empty→Only\n▌‹..\n" {
		t.Fatalf("expected only the back entry, got %q", got)
	}
}

func TestViewTruncatesStatusToWidth(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{Width: 10}))
	h.Model().errMsg = "a very long error message"
	lines := strings.Split(h.View(), "\n")
	status := lines[len(lines)-1]
	if status != "a very lo…" {
		t.Fatalf("expected truncated status, got %q", status)
	}
}
