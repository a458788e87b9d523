package menu

import (
	"fmt"

	"github.com/atomicstack/popup-menu/internal/logging/events"
)

const defaultBackLabel = ".."

// Navigation is the payload of a completed group transition.
type Navigation struct {
	From *Group
	To   *Group
	// Back is set when To was an ancestor of From on the navigation stack.
	Back bool
}

// Option customises a Model.
type Option func(*Model)

// WithBackLabel sets the label shown on the synthetic back entries.
func WithBackLabel(label string) Option {
	return func(m *Model) {
		if label != "" {
			m.backLabel = label
		}
	}
}

// Model tracks the open group and exposes its children as a flat view.
//
// The view is the active group's children, preceded by a back entry when the
// group is not the root and followed by a second back entry when the group
// sets BackAtBottom. The two back entries are distinct commands so a
// presentation can always tell which one is selected.
type Model struct {
	root      *Group
	stack     []*Group
	active    *Group
	view      []Node
	backLabel string
	backTop   *Command
	backBot   *Command

	activeSubs []func()
	pathSubs   []func()

	navigated    Signal[Navigation]
	viewChanged  Signal[*Group]
	itemChanged  Signal[Node]
	pathChanged  Signal[[]string]
	titleChanged Signal[string]
}

// NewModel creates a navigation model and opens root.
func NewModel(root *Group, opts ...Option) *Model {
	m := &Model{root: root, backLabel: defaultBackLabel}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.backTop = NewCommand(m.backLabel, m.Back)
	m.backBot = NewCommand(m.backLabel, m.Back)
	if root != nil {
		m.NavigateTo(root)
	}
	return m
}

// Root returns the group the model was created with.
func (m *Model) Root() *Group {
	return m.root
}

// Active returns the open group.
func (m *Model) Active() *Group {
	return m.active
}

// Depth returns the number of groups on the navigation stack.
func (m *Model) Depth() int {
	return len(m.stack)
}

// CurrentView returns a copy of the flattened view of the active group.
func (m *Model) CurrentView() []Node {
	out := make([]Node, len(m.view))
	copy(out, m.view)
	return out
}

// Len returns the number of entries in the current view.
func (m *Model) Len() int {
	return len(m.view)
}

// At returns the view entry at idx, or nil when out of range.
func (m *Model) At(idx int) Node {
	if idx < 0 || idx >= len(m.view) {
		return nil
	}
	return m.view[idx]
}

// IndexOf returns the position of n in the current view, or -1.
func (m *Model) IndexOf(n Node) int {
	if n == nil {
		return -1
	}
	for i, v := range m.view {
		if v == n {
			return i
		}
	}
	return -1
}

// IsBack reports whether n is one of the model's back entries.
func (m *Model) IsBack(n Node) bool {
	if n == nil {
		return false
	}
	return n == Node(m.backTop) || n == Node(m.backBot)
}

// KindOf classifies n, reporting back entries as KindBack.
func (m *Model) KindOf(n Node) Kind {
	if m.IsBack(n) {
		return KindBack
	}
	return KindOf(n)
}

// Path returns the labels of the stacked groups from the root to the active group.
func (m *Model) Path() []string {
	out := make([]string, len(m.stack))
	for i, g := range m.stack {
		out[i] = g.Label()
	}
	return out
}

// Title returns the active group's label.
func (m *Model) Title() string {
	if m.active == nil {
		return ""
	}
	return m.active.Label()
}

// Select acts on an entry of the current view: groups are entered, commands
// invoked. Entries outside the view and plain items are ignored.
func (m *Model) Select(n Node) {
	if m.IndexOf(n) < 0 {
		return
	}
	switch v := n.(type) {
	case *Group:
		events.Menu.Select(v.Label(), KindGroup.String())
		m.NavigateTo(v)
	case *Command:
		kind := KindCommand
		if m.IsBack(v) {
			kind = KindBack
		}
		events.Menu.Select(v.Label(), kind.String())
		v.Invoke()
	}
}

// NavigateTo closes the active group and opens g.
func (m *Model) NavigateTo(g *Group) {
	if g == nil {
		return
	}
	nav := Navigation{From: m.active, To: g}
	if m.active != nil {
		for _, s := range m.stack[:len(m.stack)-1] {
			if s == g {
				nav.Back = true
				break
			}
		}
		m.closeActive()
	}
	m.open(g)
	events.Menu.Navigate(labelOf(nav.From), g.Label(), nav.Back, len(m.stack))
	m.navigated.Emit(nav)
	m.watchPath()
	m.emitPath()
}

// Back returns to the group below the active one. It pops the active group
// and its parent, then navigates to the parent as usual. Calling Back at the
// root is a caller bug; the view never offers a back entry there.
func (m *Model) Back() {
	if len(m.stack) < 2 {
		panic(fmt.Errorf("back from %q: %w", m.Title(), ErrNoBackTarget))
	}
	target := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-2]
	m.navigateFrom(target)
}

// navigateFrom is NavigateTo for targets already removed from the stack.
func (m *Model) navigateFrom(target *Group) {
	nav := Navigation{From: m.active, To: target, Back: true}
	m.closeActive()
	m.open(target)
	events.Menu.Navigate(labelOf(nav.From), target.Label(), true, len(m.stack))
	m.navigated.Emit(nav)
	m.watchPath()
	m.emitPath()
}

// Close releases the active group and every listener the model attached.
func (m *Model) Close() {
	if m.active != nil {
		m.closeActive()
	}
	for _, cancel := range m.pathSubs {
		cancel()
	}
	m.pathSubs = nil
	m.stack = nil
}

func (m *Model) open(g *Group) {
	g.Open()
	events.Menu.Open(g.Label(), g.OpenedBy())
	m.active = g
	m.activeSubs = append(m.activeSubs[:0],
		g.OnChildrenChanged(m.handleChildrenChanged),
		g.OnChildLabelChanged(m.handleChildLabelChanged),
	)
	m.stack = append(m.stack, g)
	m.rebuildView()
}

func (m *Model) closeActive() {
	g := m.active
	for _, cancel := range m.activeSubs {
		cancel()
	}
	m.activeSubs = m.activeSubs[:0]
	m.view = m.view[:0]
	m.active = nil
	g.Close()
	events.Menu.Close(g.Label(), g.OpenedBy())
}

func (m *Model) rebuildView() {
	m.view = m.view[:0]
	if m.active == nil {
		return
	}
	if m.active != m.root {
		m.view = append(m.view, m.backTop)
	}
	m.view = append(m.view, m.active.children...)
	if m.active.BackAtBottom && m.active != m.root {
		m.view = append(m.view, m.backBot)
	}
}

func (m *Model) handleChildrenChanged(change ChildrenChange) {
	if change.Group != m.active {
		return
	}
	m.rebuildView()
	m.viewChanged.Emit(m.active)
}

func (m *Model) handleChildLabelChanged(n Node) {
	if m.IndexOf(n) < 0 {
		return
	}
	m.itemChanged.Emit(n)
}

// watchPath tracks label changes on every stacked group so the path and
// title listeners hear about renames.
func (m *Model) watchPath() {
	for _, cancel := range m.pathSubs {
		cancel()
	}
	m.pathSubs = m.pathSubs[:0]
	seen := make(map[*Group]struct{}, len(m.stack))
	for _, g := range m.stack {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		m.pathSubs = append(m.pathSubs, g.OnLabelChanged(func(Node) { m.emitPath() }))
	}
}

func (m *Model) emitPath() {
	m.pathChanged.Emit(m.Path())
	m.titleChanged.Emit(m.Title())
}

// OnNavigated fires once the target group is open and the view rebuilt.
func (m *Model) OnNavigated(fn func(Navigation)) (cancel func()) {
	return m.navigated.Subscribe(fn)
}

// OnViewChanged fires after the active group's children change.
func (m *Model) OnViewChanged(fn func(*Group)) (cancel func()) {
	return m.viewChanged.Subscribe(fn)
}

// OnItemChanged fires when the label of a current view entry changes.
func (m *Model) OnItemChanged(fn func(Node)) (cancel func()) {
	return m.itemChanged.Subscribe(fn)
}

// OnPathChanged fires with the root-to-active label sequence.
func (m *Model) OnPathChanged(fn func([]string)) (cancel func()) {
	return m.pathChanged.Subscribe(fn)
}

// OnTitleChanged fires with the active group's label.
func (m *Model) OnTitleChanged(fn func(string)) (cancel func()) {
	return m.titleChanged.Subscribe(fn)
}

func labelOf(g *Group) string {
	if g == nil {
		return ""
	}
	return g.Label()
}
