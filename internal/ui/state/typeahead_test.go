package state

import (
	"testing"
	"time"
)

func TestBestMatchIndexPrefersExactThenPrefix(t *testing.T) {
	labels := []string{"Reload config", "Rename window", "Kill pane", "Rename session"}
	cases := map[string]int{
		"kill pane": 2,
		"ren":       1,
		"session":   3,
		"kp":        2,
		"":          -1,
		"zzz":       -1,
	}
	for query, want := range cases {
		if got := BestMatchIndex(labels, query); got != want {
			t.Fatalf("query %q: expected %d, got %d", query, want, got)
		}
	}
}

func TestBestMatchIndexEmptyLabels(t *testing.T) {
	if got := BestMatchIndex(nil, "a"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestTypeAheadAccumulatesAndExpires(t *testing.T) {
	ta := NewTypeAhead(time.Second)
	start := time.Unix(100, 0)
	ta.Add("r", start)
	if got := ta.Add("e", start.Add(500*time.Millisecond)); got != "re" {
		t.Fatalf("expected re, got %q", got)
	}
	if ta.Expired(start.Add(1200 * time.Millisecond)) {
		t.Fatalf("expected query to be fresh one second after the last key")
	}
	if got := ta.Add("k", start.Add(3*time.Second)); got != "k" {
		t.Fatalf("expected stale query to restart, got %q", got)
	}
}

func TestTypeAheadExpireChecksSequence(t *testing.T) {
	ta := NewTypeAhead(time.Second)
	now := time.Now()
	ta.Add("a", now)
	stale := ta.Seq()
	ta.Add("b", now)
	if ta.Expire(stale) {
		t.Fatalf("expected stale expiry to be ignored")
	}
	if !ta.Expire(ta.Seq()) || ta.Query() != "" {
		t.Fatalf("expected current expiry to clear the query")
	}
}

func TestTypeAheadWithoutTimeoutNeverExpires(t *testing.T) {
	ta := NewTypeAhead(0)
	now := time.Now()
	ta.Add("a", now)
	if ta.Expired(now.Add(time.Hour)) {
		t.Fatalf("expected no expiry without a timeout")
	}
	ta.Reset()
	if ta.Query() != "" {
		t.Fatalf("expected reset to clear the query")
	}
}
