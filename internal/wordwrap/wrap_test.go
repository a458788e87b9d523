package wordwrap

import (
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello", 10, []string{"hello"}},
		{"break at following space", "hello world", 5, []string{"hello", "world"}},
		{"break at last space in window", "one two three", 8, []string{"one two", "three"}},
		{"hard break", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"single letters", "a b c d", 3, []string{"a b", "c d"}},
		{"newline", "line1\nline2", 20, []string{"line1", "line2"}},
		{"crlf", "a\r\nb", 20, []string{"a", "b"}},
		{"cr", "a\rb", 20, []string{"a", "b"}},
		{"blank line", "a\n\nb", 20, []string{"a", "", "b"}},
		{"wide runes", "日本語", 4, []string{"日本", "語"}},
		{"rune wider than window", "日本", 1, []string{"日", "本"}},
		{"unwrapped", "a long line of text", 0, []string{"a long line of text"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Lines(tc.text, tc.width, DefaultBreakable)
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWrapEmptyText(t *testing.T) {
	if got := Lines("", 5, DefaultBreakable); len(got) != 0 {
		t.Fatalf("expected no lines, got %q", got)
	}
	if got := Lines("", 0, DefaultBreakable); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected one empty line when unwrapped, got %q", got)
	}
}

func TestSegmentsKeepTrailingBreakable(t *testing.T) {
	text := "hello world"
	var segs []Segment
	for seg := range Wrap(text, 5, DefaultBreakable) {
		segs = append(segs, seg)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if got := segs[0].Text(text); got != "hello " {
		t.Fatalf("expected %q, got %q", "hello ", got)
	}
	if w := Width(segs[0].Text(text)); w != 6 {
		t.Fatalf("expected the raw segment to overrun by one cell, got width %d", w)
	}
	if w := Width(Trim(text, segs[0], DefaultBreakable)); w != 5 {
		t.Fatalf("expected the trimmed segment to fit, got width %d", w)
	}
	if segs[1].Start != segs[0].End() {
		t.Fatalf("expected contiguous segments, got %+v", segs)
	}
}

func TestSegmentsCoverTextWithoutBreaks(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	var sb strings.Builder
	for seg := range Wrap(text, 7, DefaultBreakable) {
		sb.WriteString(seg.Text(text))
	}
	if sb.String() != text {
		t.Fatalf("expected segments to reassemble the text, got %q", sb.String())
	}
}

func TestCustomBreakables(t *testing.T) {
	got := Lines("alpha/beta/gamma", 11, "/")
	if strings.Join(got, "|") != "alpha/beta|gamma" {
		t.Fatalf("unexpected lines %q", got)
	}
	got = Lines("alpha beta", 6, "")
	if strings.Join(got, "|") != "alpha |beta" {
		t.Fatalf("expected hard breaks without breakables, got %q", got)
	}
}

func TestWrapStopsEarly(t *testing.T) {
	count := 0
	for range Wrap(strings.Repeat("word ", 100), 5, DefaultBreakable) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected to stop after 2 segments, got %d", count)
	}
}

func TestWidth(t *testing.T) {
	if Width("abc") != 3 || Width("日本") != 4 {
		t.Fatalf("unexpected widths %d/%d", Width("abc"), Width("日本"))
	}
}
