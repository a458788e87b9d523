package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/definition"
	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const reloadDebounce = 250 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	MenuPath         string
	SocketPath       string
	Width            int
	Height           int
	InitialWidth     int
	InitialHeight    int
	ShowFooter       bool
	Verbose          bool
	Watch            bool
	BackLabel        string
	TypeAheadTimeout time.Duration
	Layout           layout.Config
}

// Run loads the menu definition and executes the Bubble Tea program.
func Run(cfg Config) error {
	def, err := definition.Load(cfg.MenuPath)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	events.Definition.Load(cfg.MenuPath, def.Count())

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.MenuPath, reloadDebounce)
		if err != nil {
			// The menu still works without live reload.
			logging.Error(fmt.Errorf("watch %s: %w", cfg.MenuPath, err))
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	model := ui.NewModel(Options(cfg, def, watcher))
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Options maps cfg onto the UI model options.
func Options(cfg Config, def definition.Definition, watcher *backend.Watcher) ui.Options {
	return ui.Options{
		Definition:       def,
		SocketPath:       ResolveSocketPath(cfg.SocketPath),
		Width:            cfg.Width,
		Height:           cfg.Height,
		InitialWidth:     cfg.InitialWidth,
		InitialHeight:    cfg.InitialHeight,
		ShowFooter:       cfg.ShowFooter,
		Verbose:          cfg.Verbose,
		Layout:           cfg.Layout,
		BackLabel:        cfg.BackLabel,
		TypeAheadTimeout: cfg.TypeAheadTimeout,
		Watcher:          watcher,
		Styles:           theme.Default(),
	}
}

// ResolveSocketPath returns the tmux socket used by tmux entries. Without an
// explicit value the socket of the enclosing tmux client is used; an empty
// result lets tmux pick its default.
func ResolveSocketPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		socket, _, _ := strings.Cut(tmuxEnv, ",")
		return socket
	}
	return ""
}
