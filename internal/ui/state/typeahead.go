package state

import (
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TypeAhead accumulates typed text into a query used to jump the selection.
// The query starts over once it has been idle for longer than Timeout.
type TypeAhead struct {
	Timeout time.Duration

	query string
	last  time.Time
	seq   int
}

// NewTypeAhead returns an empty type-ahead. A non-positive timeout never
// expires the query on its own.
func NewTypeAhead(timeout time.Duration) *TypeAhead {
	return &TypeAhead{Timeout: timeout}
}

// Add appends text typed at now and returns the resulting query.
func (t *TypeAhead) Add(text string, now time.Time) string {
	if t.Expired(now) {
		t.query = ""
	}
	t.query += text
	t.last = now
	t.seq++
	return t.query
}

// Query returns the current query.
func (t *TypeAhead) Query() string {
	return t.query
}

// Seq identifies the latest Add, so a delayed expiry can tell whether more
// input arrived since it was scheduled.
func (t *TypeAhead) Seq() int {
	return t.seq
}

// Expired reports whether the query has been idle past Timeout at now.
func (t *TypeAhead) Expired(now time.Time) bool {
	if t.query == "" || t.Timeout <= 0 {
		return false
	}
	return now.Sub(t.last) > t.Timeout
}

// Expire clears the query if no input arrived since seq.
func (t *TypeAhead) Expire(seq int) bool {
	if seq != t.seq || t.query == "" {
		return false
	}
	t.query = ""
	return true
}

// Reset clears the query.
func (t *TypeAhead) Reset() {
	t.query = ""
	t.seq++
}

// BestMatchIndex returns the index of the label that best matches query:
// an exact match first, then a prefix, then a substring, then the closest
// fuzzy match. It returns -1 when nothing matches.
func BestMatchIndex(labels []string, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(labels) == 0 {
		return -1
	}
	lower := strings.ToLower(trimmed)
	for i, label := range labels {
		if strings.EqualFold(label, trimmed) {
			return i
		}
	}
	for i, label := range labels {
		if strings.HasPrefix(strings.ToLower(label), lower) {
			return i
		}
	}
	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(labels) {
		return -1
	}
	return best.OriginalIndex
}
