package menu

import "errors"

var (
	// ErrNotOpen is raised when a group is closed more often than it was opened.
	ErrNotOpen = errors.New("menu: group is not open")
	// ErrNoBackTarget is raised when back navigation is requested at the root.
	ErrNoBackTarget = errors.New("menu: no group to return to")
)

// Kind classifies a node for rendering purposes.
type Kind int

const (
	KindItem Kind = iota
	KindCommand
	KindGroup
	KindBack
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindGroup:
		return "group"
	case KindBack:
		return "back"
	default:
		return "item"
	}
}

// Node is implemented by *Item, *Command and *Group. Nodes compare by
// identity: two nodes with the same label are still different entries.
//
// A node carries no parent pointer and may be attached to several groups.
// Attaching a group beneath one of its own descendants forms a cycle; nothing
// detects that, and navigating such a tree never terminates on its own.
type Node interface {
	Label() string
	SetLabel(label string)
	OnLabelChanged(fn func(Node)) (cancel func())
	base() *Item
}

// Item is a plain, informational menu entry.
type Item struct {
	label        string
	labelChanged Signal[Node]
	owner        Node
}

// NewItem creates a plain entry.
func NewItem(label string) *Item {
	it := &Item{label: label}
	it.owner = it
	return it
}

// Label returns the current label.
func (i *Item) Label() string {
	return i.label
}

// SetLabel replaces the label and notifies listeners, even when the text is
// unchanged.
func (i *Item) SetLabel(label string) {
	i.label = label
	i.labelChanged.Emit(i.node())
}

// OnLabelChanged attaches a listener fired after every SetLabel.
func (i *Item) OnLabelChanged(fn func(Node)) (cancel func()) {
	return i.labelChanged.Subscribe(fn)
}

func (i *Item) base() *Item {
	return i
}

func (i *Item) node() Node {
	if i.owner != nil {
		return i.owner
	}
	return i
}

// Command is an entry that runs an action when selected.
type Command struct {
	Item
	action func()
}

// NewCommand creates a command entry. A nil action makes Invoke a no-op.
func NewCommand(label string, action func()) *Command {
	c := &Command{Item: Item{label: label}, action: action}
	c.owner = c
	return c
}

// Invoke runs the command's action.
func (c *Command) Invoke() {
	if c == nil || c.action == nil {
		return
	}
	c.action()
}

// KindOf reports how a node should be presented.
func KindOf(n Node) Kind {
	switch n.(type) {
	case *Group:
		return KindGroup
	case *Command:
		return KindCommand
	default:
		return KindItem
	}
}
