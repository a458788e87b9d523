package layout

import (
	"maps"

	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/wordwrap"
)

// Marker holds the glyphs drawn in front of an entry's lines.
type Marker struct {
	Selected rune
	Default  rune
}

// Config describes the display surface and the glyphs used to draw entries.
type Config struct {
	// MaxWidth is the line width budget in cells. Zero or less disables wrapping.
	MaxWidth int
	// Capacity is the number of lines the viewport shows. Zero or less shows
	// every line.
	Capacity int
	// Padding is the number of PaddingChar cells in front of each line. On the
	// selected line the first cell shows Cursor instead.
	Padding     int
	PaddingChar rune
	Cursor      rune
	BreakChars  string
	Markers     map[menu.Kind]Marker
	Suffixes    map[menu.Kind]string
}

// DefaultConfig returns the glyph set used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Padding:     1,
		PaddingChar: ' ',
		Cursor:      '▌',
		BreakChars:  wordwrap.DefaultBreakable,
		Markers: map[menu.Kind]Marker{
			menu.KindItem:    {Selected: ' ', Default: ' '},
			menu.KindCommand: {Selected: '›', Default: ' '},
			menu.KindGroup:   {Selected: '›', Default: ' '},
			menu.KindBack:    {Selected: '‹', Default: ' '},
		},
		Suffixes: map[menu.Kind]string{
			menu.KindGroup: " …",
		},
	}
}

func (c Config) marker(kind menu.Kind, selected bool) rune {
	m, ok := c.Markers[kind]
	if !ok {
		return c.PaddingChar
	}
	if selected {
		return m.Selected
	}
	return m.Default
}

func (c Config) suffix(kind menu.Kind) string {
	return c.Suffixes[kind]
}

// wrapWidth returns the width available to an entry's label text.
func (c Config) wrapWidth(kind menu.Kind) int {
	if c.MaxWidth <= 0 {
		return 0
	}
	w := c.MaxWidth - c.prefixWidth() - wordwrap.Width(c.suffix(kind))
	if w <= 0 {
		return 0
	}
	return w
}

func (c Config) prefixWidth() int {
	p := c.Padding
	if p < 0 {
		p = 0
	}
	return p + 1
}

// affectsLines reports whether switching from c to next invalidates the
// built line set.
func (c Config) affectsLines(next Config) bool {
	return c.MaxWidth != next.MaxWidth ||
		c.Padding != next.Padding ||
		c.PaddingChar != next.PaddingChar ||
		c.Cursor != next.Cursor ||
		c.BreakChars != next.BreakChars ||
		!maps.Equal(c.Markers, next.Markers) ||
		!maps.Equal(c.Suffixes, next.Suffixes)
}

func (c Config) clone() Config {
	c.Markers = maps.Clone(c.Markers)
	c.Suffixes = maps.Clone(c.Suffixes)
	return c
}
