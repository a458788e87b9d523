package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/menu"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs([]string{"--menu", "menu.yaml"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.MenuPath != "menu.yaml" {
		t.Fatalf("expected menu path, got %q", cfg.App.MenuPath)
	}
	if !cfg.App.Watch || cfg.App.ShowFooter || cfg.App.Verbose {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if cfg.App.Layout.Cursor != layout.DefaultConfig().Cursor {
		t.Fatalf("expected default cursor, got %q", cfg.App.Layout.Cursor)
	}
	if cfg.App.TypeAheadTimeout != time.Second {
		t.Fatalf("expected 1s type-ahead timeout, got %s", cfg.App.TypeAheadTimeout)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadArgsPositionalMenu(t *testing.T) {
	cfg, err := LoadArgs([]string{"--footer", "other.yaml"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.MenuPath != "other.yaml" || !cfg.App.ShowFooter {
		t.Fatalf("expected positional menu and footer, got %#v", cfg.App)
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	env := []string{
		"POPUP_MENU_FILE=/etc/menu.yaml",
		"POPUP_MENU_WIDTH=40",
		"POPUP_MENU_HEIGHT=not-a-number",
		"POPUP_MENU_PADDING=3",
		"POPUP_MENU_NO_WATCH=true",
		"POPUP_MENU_SOCKET=/tmp/sock",
		"malformed",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.MenuPath != "/etc/menu.yaml" || cfg.App.SocketPath != "/tmp/sock" {
		t.Fatalf("expected env paths, got %#v", cfg.App)
	}
	if cfg.App.Width != 40 || cfg.App.Height != 0 {
		t.Fatalf("expected width 40 and fallback height, got %d/%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.Layout.Padding != 3 {
		t.Fatalf("expected padding 3, got %d", cfg.App.Layout.Padding)
	}
	if cfg.App.Watch || cfg.Features.Watch {
		t.Fatalf("expected watching disabled")
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs([]string{"--width", "60", "--verbose"}, []string{"POPUP_MENU_WIDTH=40", "POPUP_MENU_FILE=m.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 60 || !cfg.Features.Verbose {
		t.Fatalf("expected flags to win, got %#v", cfg.App)
	}
	if cfg.Flags["width"] != "60" || cfg.Flags["menu"] != "m.yaml" {
		t.Fatalf("unexpected flag record %#v", cfg.Flags)
	}
}

func TestLoadArgsRejectsNegativeSizes(t *testing.T) {
	if _, err := LoadArgs([]string{"--width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
	if _, err := LoadArgs([]string{"--height", "-2"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
	if _, err := LoadArgs([]string{"--bogus"}, nil); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestValidateRequiresMenu(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); !errors.Is(err, ErrNoMenu) {
		t.Fatalf("expected ErrNoMenu, got %v", err)
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileOverridesGlyphs(t *testing.T) {
	path := writeConfig(t, "popup.yaml", `
layout:
  padding: 2
  padding_char: "."
  cursor: ">"
  break_chars: " /"
  markers:
    command:
      selected: "*"
    back:
      selected: "<"
      default: "-"
  suffix:
    group: "/"
menu:
  back_label: "up"
  typeahead_timeout: 500ms
`)
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := f.Layout
	if cfg.Padding != 2 || cfg.PaddingChar != '.' || cfg.Cursor != '>' || cfg.BreakChars != " /" {
		t.Fatalf("unexpected layout %#v", cfg)
	}
	if got := cfg.Markers[menu.KindCommand]; got.Selected != '*' || got.Default != ' ' {
		t.Fatalf("expected command marker override with default kept, got %#v", got)
	}
	if got := cfg.Markers[menu.KindBack]; got.Selected != '<' || got.Default != '-' {
		t.Fatalf("unexpected back marker %#v", got)
	}
	if got := cfg.Markers[menu.KindGroup]; got != layout.DefaultConfig().Markers[menu.KindGroup] {
		t.Fatalf("expected group marker untouched, got %#v", got)
	}
	if cfg.Suffixes[menu.KindGroup] != "/" {
		t.Fatalf("expected group suffix override, got %q", cfg.Suffixes[menu.KindGroup])
	}
	if f.BackLabel != "up" || f.TypeAheadTimeout != 500*time.Millisecond {
		t.Fatalf("unexpected menu settings %#v", f)
	}
}

func TestLoadFileToml(t *testing.T) {
	path := writeConfig(t, "popup.toml", "[layout]\ncursor = \"»\"\n\n[layout.suffix]\ngroup = \"\"\n")
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Layout.Cursor != '»' {
		t.Fatalf("expected cursor », got %q", f.Layout.Cursor)
	}
	if _, ok := f.Layout.Suffixes[menu.KindGroup]; ok {
		t.Fatalf("expected empty suffix to remove the group suffix")
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := writeConfig(t, "bad.yaml", "layout:\n  cursor: \"->\"\n")
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "layout.cursor") {
		t.Fatalf("expected cursor error, got %v", err)
	}
	path = writeConfig(t, "neg.yaml", "layout:\n  padding: -1\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected padding error")
	}
}

func TestLoadArgsReadsConfigFile(t *testing.T) {
	path := writeConfig(t, "popup.yaml", "layout:\n  padding: 4\nmenu:\n  back_label: up\n")
	cfg, err := LoadArgs([]string{"--config", path, "--menu", "m.yaml"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Layout.Padding != 4 || cfg.App.BackLabel != "up" {
		t.Fatalf("expected file settings, got %#v", cfg.App)
	}
	cfg, err = LoadArgs([]string{"--config", path, "--padding", "0"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Layout.Padding != 0 {
		t.Fatalf("expected --padding to override the file, got %d", cfg.App.Layout.Padding)
	}
}
