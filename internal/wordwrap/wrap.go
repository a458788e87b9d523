// Package wordwrap splits text into display lines no wider than a given
// number of terminal cells.
package wordwrap

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultBreakable lists the runes a line may be broken after.
const DefaultBreakable = " "

// Segment is a byte range of the source text making up one display line.
type Segment struct {
	Start  int
	Length int
}

// End returns the byte offset just past the segment.
func (s Segment) End() int {
	return s.Start + s.Length
}

// Text returns the part of text covered by s.
func (s Segment) Text(text string) string {
	return text[s.Start:s.End()]
}

// Wrap yields the lines of text, each at most maxWidth cells wide once
// trailing breakable runes are trimmed.
//
// A line ends at an embedded \n, \r or \r\n (the break itself belongs to no
// segment), after the last breakable rune that still fits, or, when a single
// word is wider than the window, exactly at the window edge. Breakable runes
// stay at the end of their segment; see Trim. When a breakable rune directly
// follows a full window it is pulled into that segment, so the raw segment
// can be one breakable rune wider than maxWidth. maxWidth <= 0 disables
// wrapping and yields the whole text as one segment.
//
// The sequence is computed lazily; stopping early costs nothing for the rest
// of the text.
func Wrap(text string, maxWidth int, breakable string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if maxWidth <= 0 {
			yield(Segment{Start: 0, Length: len(text)})
			return
		}
		pos := 0
		for pos < len(text) {
			end, brk := scanWindow(text, pos, maxWidth)
			if brk >= 0 {
				if !yield(Segment{Start: pos, Length: brk - pos}) {
					return
				}
				pos = brk + 1
				if text[brk] == '\r' && pos < len(text) && text[pos] == '\n' {
					pos++
				}
				continue
			}
			if end >= len(text) {
				yield(Segment{Start: pos, Length: len(text) - pos})
				return
			}
			cut := breakAfter(text, pos, end, breakable)
			if !yield(Segment{Start: pos, Length: cut - pos}) {
				return
			}
			pos = cut
		}
	}
}

// scanWindow advances from pos while the runes fit in width cells. It returns
// the byte offset where the window ends, or the offset of a line break met
// inside the window (otherwise -1).
func scanWindow(text string, pos, width int) (end, brk int) {
	used := 0
	end = pos
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if r == '\n' || r == '\r' {
			return end, end
		}
		w := runewidth.RuneWidth(r)
		if used+w > width && end > pos {
			break
		}
		used += w
		end += size
	}
	return end, -1
}

// breakAfter picks the offset the window [pos,end) should be cut at.
func breakAfter(text string, pos, end int, breakable string) int {
	if breakable == "" {
		return end
	}
	if r, size := utf8.DecodeRuneInString(text[end:]); strings.ContainsRune(breakable, r) {
		return end + size
	}
	for i := end; i > pos; {
		r, size := utf8.DecodeLastRuneInString(text[pos:i])
		if strings.ContainsRune(breakable, r) {
			return i
		}
		i -= size
	}
	return end
}

// Trim returns the text of seg without its trailing breakable runes.
func Trim(text string, seg Segment, breakable string) string {
	line := seg.Text(text)
	if breakable == "" {
		return line
	}
	return strings.TrimRightFunc(line, func(r rune) bool {
		return strings.ContainsRune(breakable, r)
	})
}

// Lines collects the trimmed lines of text.
func Lines(text string, maxWidth int, breakable string) []string {
	var out []string
	for seg := range Wrap(text, maxWidth, breakable) {
		out = append(out, Trim(text, seg, breakable))
	}
	return out
}

// Width returns the display width of s in cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}
