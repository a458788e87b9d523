package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/popup-menu/internal/app"
)

// ErrNoMenu is returned when no menu definition file was named.
var ErrNoMenu = errors.New("no menu definition given (use --menu or POPUP_MENU_FILE)")

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Watch   bool
}

const (
	envMenuFile   = "POPUP_MENU_FILE"
	envConfigFile = "POPUP_MENU_CONFIG"
	envSocketPath = "POPUP_MENU_SOCKET"
	envWidth      = "POPUP_MENU_WIDTH"
	envHeight     = "POPUP_MENU_HEIGHT"
	envPadding    = "POPUP_MENU_PADDING"
	envShowFooter = "POPUP_MENU_FOOTER"
	envVerbose    = "POPUP_MENU_VERBOSE"
	envNoWatch    = "POPUP_MENU_NO_WATCH"
	envTrace      = "POPUP_MENU_TRACE"
	envLogFile    = "POPUP_MENU_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("popup-menu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuPath := fs.String("menu", envOrDefault(env, envMenuFile, ""), "path to the menu definition (YAML)")
	configPath := fs.String("config", envOrDefault(env, envConfigFile, ""), "path to an optional layout config file")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket used by tmux entries")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	padding := fs.Int("padding", envOrInt(env, envPadding, -1), "padding cells in front of each entry (-1 keeps the configured value)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	noWatch := fs.Bool("no-watch", envOrBool(env, envNoWatch, false), "do not reload the menu when its file changes")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *menuPath == "" && fs.NArg() > 0 {
		*menuPath = fs.Arg(0)
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	file, err := LoadFile(*configPath)
	if err != nil {
		return Config{}, err
	}
	if *padding >= 0 {
		file.Layout.Padding = *padding
	}

	cfg := Config{
		App: app.Config{
			MenuPath:         *menuPath,
			SocketPath:       *socket,
			Width:            *width,
			Height:           *height,
			ShowFooter:       *footer,
			Verbose:          *verbose,
			Watch:            !*noWatch,
			BackLabel:        file.BackLabel,
			TypeAheadTimeout: file.TypeAheadTimeout,
			Layout:           file.Layout,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
			Watch:   !*noWatch,
		},
		Flags: map[string]string{
			"menu":    *menuPath,
			"config":  *configPath,
			"socket":  *socket,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"padding": strconv.Itoa(*padding),
			"footer":  strconv.FormatBool(*footer),
			"noWatch": strconv.FormatBool(*noWatch),
			"trace":   strconv.FormatBool(*trace),
			"verbose": strconv.FormatBool(*verbose),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.MenuPath) == "" {
		return ErrNoMenu
	}
	if cfg.App.Layout.Padding < 0 {
		return fmt.Errorf("padding must be >= 0 (got %d)", cfg.App.Layout.Padding)
	}
	return nil
}
