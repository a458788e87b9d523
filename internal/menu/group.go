package menu

import "fmt"

// ChildrenChange describes a single structural change to a group. A change
// with a nil Child and Index -1 reports a BackAtBottom toggle.
type ChildrenChange struct {
	Group *Group
	Child Node
	Index int
	Added bool
}

// Group is an entry holding an ordered list of children. It keeps a count of
// the presentations that currently have it open so that opening the same
// group from several places only fires Opened and Closed once.
type Group struct {
	Item

	children  []Node
	childSubs map[Node]func()
	openedBy  int

	// BackAtBottom asks the navigation model to add a trailing back entry
	// beneath the children in addition to the leading one.
	BackAtBottom bool

	childrenChanged   Signal[ChildrenChange]
	childLabelChanged Signal[Node]
	opened            Signal[*Group]
	closed            Signal[*Group]
}

// NewGroup creates a group with the given children in order.
func NewGroup(label string, children ...Node) *Group {
	g := &Group{Item: Item{label: label}, childSubs: make(map[Node]func())}
	g.owner = g
	for _, child := range children {
		g.AddChild(child)
	}
	return g
}

// SetBackAtBottom toggles the trailing back entry and notifies children
// listeners when the setting actually changes.
func (g *Group) SetBackAtBottom(enabled bool) {
	if g.BackAtBottom == enabled {
		return
	}
	g.BackAtBottom = enabled
	g.childrenChanged.Emit(ChildrenChange{Group: g, Index: -1})
}

// Children returns a copy of the child list.
func (g *Group) Children() []Node {
	out := make([]Node, len(g.children))
	copy(out, g.children)
	return out
}

// Len returns the number of children.
func (g *Group) Len() int {
	return len(g.children)
}

// IndexOf returns the position of child, or -1.
func (g *Group) IndexOf(child Node) int {
	for i, c := range g.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Contains reports whether child is attached to g.
func (g *Group) Contains(child Node) bool {
	return g.IndexOf(child) >= 0
}

// AddChild appends child. Adding a nil or already-present child does nothing.
func (g *Group) AddChild(child Node) bool {
	if child == nil || g.Contains(child) {
		return false
	}
	if g.childSubs == nil {
		g.childSubs = make(map[Node]func())
	}
	g.children = append(g.children, child)
	g.childSubs[child] = child.OnLabelChanged(g.childLabelChanged.Emit)
	g.childrenChanged.Emit(ChildrenChange{Group: g, Child: child, Index: len(g.children) - 1, Added: true})
	return true
}

// RemoveChild detaches child. Removing an absent child does nothing.
func (g *Group) RemoveChild(child Node) bool {
	idx := g.IndexOf(child)
	if idx < 0 {
		return false
	}
	g.children = append(g.children[:idx:idx], g.children[idx+1:]...)
	if cancel, ok := g.childSubs[child]; ok {
		cancel()
		delete(g.childSubs, child)
	}
	g.childrenChanged.Emit(ChildrenChange{Group: g, Child: child, Index: idx})
	return true
}

// ClearChildren removes every child, last first, notifying once per removal.
func (g *Group) ClearChildren() {
	for len(g.children) > 0 {
		g.RemoveChild(g.children[len(g.children)-1])
	}
}

// OpenedBy reports how many presentations currently have the group open.
func (g *Group) OpenedBy() int {
	return g.openedBy
}

// IsOpen reports whether at least one presentation has the group open.
func (g *Group) IsOpen() bool {
	return g.openedBy > 0
}

// Open adds a reference. Opened fires on the first reference only.
func (g *Group) Open() {
	g.openedBy++
	if g.openedBy == 1 {
		g.opened.Emit(g)
	}
}

// Close drops a reference. Closed fires when the last reference goes away.
// Closing a group that is not open is a caller bug and panics.
func (g *Group) Close() {
	if g.openedBy <= 0 {
		panic(fmt.Errorf("close %q: %w", g.label, ErrNotOpen))
	}
	g.openedBy--
	if g.openedBy == 0 {
		g.closed.Emit(g)
	}
}

// OnChildrenChanged fires after each child is added or removed.
func (g *Group) OnChildrenChanged(fn func(ChildrenChange)) (cancel func()) {
	return g.childrenChanged.Subscribe(fn)
}

// OnChildLabelChanged fires when any current child's label is set.
func (g *Group) OnChildLabelChanged(fn func(Node)) (cancel func()) {
	return g.childLabelChanged.Subscribe(fn)
}

// OnOpened fires on the transition from zero to one open reference.
func (g *Group) OnOpened(fn func(*Group)) (cancel func()) {
	return g.opened.Subscribe(fn)
}

// OnClosed fires on the transition back to zero open references.
func (g *Group) OnClosed(fn func(*Group)) (cancel func()) {
	return g.closed.Subscribe(fn)
}
