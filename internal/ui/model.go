package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/data/dispatcher"
	"github.com/atomicstack/popup-menu/internal/definition"
	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/ui/command"
	uistate "github.com/atomicstack/popup-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const menuHeaderSeparator = "→"

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Definition definition.Definition
	SocketPath string
	// Width and Height fix the popup size. Zero follows the terminal.
	Width  int
	Height int
	// InitialWidth and InitialHeight size the first frame when Width or
	// Height is unset. Resizes replace them.
	InitialWidth  int
	InitialHeight int

	ShowFooter bool
	Verbose    bool
	Layout     layout.Config
	BackLabel  string
	// TypeAheadTimeout clears the type-ahead query after this much idle
	// time. Zero keeps the query until navigation.
	TypeAheadTimeout time.Duration
	Watcher          *backend.Watcher
	Styles           *theme.Styles
}

// Model implements the Bubble Tea model for the popup menu.
type Model struct {
	registry   *definition.Registry
	menu       *menu.Model
	layout     *layout.Menu
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	backend    *backend.Watcher
	keys       keyMap
	typeAhead  *uistate.TypeAhead
	styles     *theme.Styles

	socketPath  string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	header  string
	content []string
	stale   bool

	errMsg     string
	infoMsg    string
	backendErr string

	now      func() time.Time
	handlers map[reflect.Type]msgHandler
	subs     []func()
}

// NewModel builds the live menu from opts.Definition and attaches a layout
// to it.
func NewModel(opts Options) *Model {
	m := &Model{
		bus:        command.New(),
		backend:    opts.Watcher,
		keys:       defaultKeyMap(),
		typeAhead:  uistate.NewTypeAhead(opts.TypeAheadTimeout),
		styles:     opts.Styles,
		socketPath: opts.SocketPath,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		stale:      true,
		now:        time.Now,
	}
	if m.styles == nil {
		m.styles = theme.Default()
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	} else if opts.InitialWidth > 0 {
		m.width = opts.InitialWidth
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	} else if opts.InitialHeight > 0 {
		m.height = opts.InitialHeight
	}

	m.registry = definition.Build(opts.Definition, m.enqueueAction)
	m.dispatcher = dispatcher.New(m.registry)

	var menuOpts []menu.Option
	if opts.BackLabel != "" {
		menuOpts = append(menuOpts, menu.WithBackLabel(opts.BackLabel))
	}
	m.menu = menu.NewModel(m.registry.Menu(), menuOpts...)
	m.layout = layout.New(m.menu, m.layoutConfig(opts.Layout))
	m.header = strings.Join(m.menu.Path(), menuHeaderSeparator)

	m.subs = append(m.subs,
		m.layout.OnRedraw(func() { m.stale = true }),
		m.menu.OnPathChanged(func(path []string) {
			m.header = strings.Join(path, menuHeaderSeparator)
		}),
		m.menu.OnNavigated(func(menu.Navigation) {
			m.typeAhead.Reset()
			m.errMsg = ""
			m.infoMsg = ""
		}),
	)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// Close detaches the layout and releases the open groups.
func (m *Model) Close() {
	for _, cancel := range m.subs {
		cancel()
	}
	m.subs = nil
	m.layout.Close()
	m.menu.Close()
}

// Menu exposes the navigation controller.
func (m *Model) Menu() *menu.Model {
	return m.menu
}

// Layout exposes the render state.
func (m *Model) Layout() *layout.Menu {
	return m.layout
}

// Registry exposes the definition registry backing the live tree.
func (m *Model) Registry() *definition.Registry {
	return m.registry
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(actionResultMsg{}):     m.handleActionResultMsg,
		reflect.TypeOf(typeAheadExpiredMsg{}): m.handleTypeAheadExpiredMsg,
		reflect.TypeOf(backendEventMsg{}):     m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):      m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}
