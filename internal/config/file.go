package config

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/spf13/viper"
)

const defaultTypeAheadTimeout = time.Second

var markerKinds = []menu.Kind{menu.KindItem, menu.KindCommand, menu.KindGroup, menu.KindBack}

// File holds the settings read from the optional config file.
type File struct {
	Layout           layout.Config
	BackLabel        string
	TypeAheadTimeout time.Duration
}

// LoadFile reads the layout and menu settings from path. The format follows
// the file extension (yaml, toml or json). An empty path returns the
// defaults. Keys that are absent keep their default value.
func LoadFile(path string) (File, error) {
	f := File{
		Layout:           layout.DefaultConfig(),
		TypeAheadTimeout: defaultTypeAheadTimeout,
	}
	if path == "" {
		return f, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &f.Layout
	if v.IsSet("layout.padding") {
		cfg.Padding = v.GetInt("layout.padding")
		if cfg.Padding < 0 {
			return File{}, fmt.Errorf("layout.padding must be >= 0 (got %d)", cfg.Padding)
		}
	}
	var err error
	if cfg.PaddingChar, err = glyph(v, "layout.padding_char", cfg.PaddingChar); err != nil {
		return File{}, err
	}
	if cfg.Cursor, err = glyph(v, "layout.cursor", cfg.Cursor); err != nil {
		return File{}, err
	}
	if v.IsSet("layout.break_chars") {
		cfg.BreakChars = v.GetString("layout.break_chars")
	}
	for _, kind := range markerKinds {
		marker := cfg.Markers[kind]
		base := "layout.markers." + kind.String()
		if marker.Selected, err = glyph(v, base+".selected", marker.Selected); err != nil {
			return File{}, err
		}
		if marker.Default, err = glyph(v, base+".default", marker.Default); err != nil {
			return File{}, err
		}
		cfg.Markers[kind] = marker

		key := "layout.suffix." + kind.String()
		if v.IsSet(key) {
			if suffix := v.GetString(key); suffix != "" {
				cfg.Suffixes[kind] = suffix
			} else {
				delete(cfg.Suffixes, kind)
			}
		}
	}

	f.BackLabel = v.GetString("menu.back_label")
	if v.IsSet("menu.typeahead_timeout") {
		f.TypeAheadTimeout = v.GetDuration("menu.typeahead_timeout")
		if f.TypeAheadTimeout < 0 {
			return File{}, fmt.Errorf("menu.typeahead_timeout must be >= 0 (got %s)", f.TypeAheadTimeout)
		}
	}
	return f, nil
}

// glyph reads a single-cell character from key, keeping fallback when unset.
func glyph(v *viper.Viper, key string, fallback rune) (rune, error) {
	if !v.IsSet(key) {
		return fallback, nil
	}
	s := v.GetString(key)
	if utf8.RuneCountInString(s) != 1 {
		return fallback, fmt.Errorf("%s must be a single character (got %q)", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
