package definition

import (
	"strings"

	"github.com/atomicstack/popup-menu/internal/menu"
)

// RootID is the ID of the registry root.
const RootID = "root"

// Invoker receives the action of an activated command entry.
type Invoker func(Action)

// Node ties a definition entry to the live menu node built from it.
type Node struct {
	ID       string
	Entry    Entry
	Item     menu.Node
	Children map[string]*Node
}

// Group returns the node's menu group when the entry is a submenu.
func (n *Node) Group() (*menu.Group, bool) {
	g, ok := n.Item.(*menu.Group)
	return g, ok
}

// Registry indexes the live menu tree by ID path ("root", "tools:build").
type Registry struct {
	root         *Node
	nodes        map[string]*Node
	invoke       Invoker
	backAtBottom bool
}

// Build creates the menu tree described by def. Command entries hand their
// action to invoke when activated.
func Build(def Definition, invoke Invoker) *Registry {
	r := &Registry{
		nodes:        make(map[string]*Node),
		invoke:       invoke,
		backAtBottom: def.BackAtBottom,
	}
	root := menu.NewGroup(def.Title)
	root.SetBackAtBottom(def.BackAtBottom)
	r.root = &Node{
		ID:       RootID,
		Entry:    Entry{ID: RootID, Label: def.Title, Items: def.Items},
		Item:     root,
		Children: make(map[string]*Node),
	}
	r.nodes[RootID] = r.root
	for _, e := range def.Items {
		root.AddChild(r.NewNode(RootID, e).Item)
	}
	return r
}

// Root returns the registry root node.
func (r *Registry) Root() *Node {
	return r.root
}

// Menu returns the root menu group.
func (r *Registry) Menu() *menu.Group {
	g, _ := r.root.Group()
	return g
}

// BackAtBottom reports whether new groups repeat the back entry below their
// children.
func (r *Registry) BackAtBottom() bool {
	return r.backAtBottom
}

// SetBackAtBottom changes the default used for groups built from now on.
func (r *Registry) SetBackAtBottom(enabled bool) {
	r.backAtBottom = enabled
	r.Menu().SetBackAtBottom(enabled)
}

// Len returns the number of registered nodes, the root included.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Child resolves a child node under the given parent for the provided key.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	node, ok := parent.Children[key]
	return node, ok
}

// NewNode builds the menu node for e, and its subtree, and registers it under
// parentID. Attaching the node to the parent's menu group is left to the
// caller.
func (r *Registry) NewNode(parentID string, e Entry) *Node {
	id := joinID(parentID, e.ID)
	node := &Node{ID: id, Entry: e, Children: make(map[string]*Node)}
	// Registered first so nested entries find their parent.
	r.nodes[id] = node
	if parent, ok := r.nodes[parentID]; ok {
		parent.Children[e.ID] = node
	}
	switch {
	case e.IsGroup():
		g := menu.NewGroup(e.Label)
		g.SetBackAtBottom(r.backAtBottom || e.BackAtBottom)
		for _, child := range e.Items {
			g.AddChild(r.NewNode(id, child).Item)
		}
		node.Item = g
	case e.IsCommand():
		node.Item = menu.NewCommand(e.Label, func() {
			if r.invoke != nil {
				r.invoke(ActionOf(node.ID, node.Entry))
			}
		})
	default:
		node.Item = menu.NewItem(e.Label)
	}
	return node
}

// Forget unregisters node and its subtree.
func (r *Registry) Forget(node *Node) {
	for _, child := range node.Children {
		r.Forget(child)
	}
	delete(r.nodes, node.ID)
	parentID, key := parentKey(node.ID)
	if parent, ok := r.nodes[parentID]; ok && parent.Children[key] == node {
		delete(parent.Children, key)
	}
}

func parentKey(id string) (string, string) {
	if id == "" {
		return RootID, ""
	}
	if !strings.Contains(id, ":") {
		return RootID, id
	}
	idx := strings.LastIndex(id, ":")
	return id[:idx], id[idx+1:]
}
