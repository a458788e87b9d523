package dispatcher

import (
	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/definition"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
)

// Result summarises what a reload changed in the live tree.
type Result struct {
	Added      int
	Removed    int
	Relabelled int
	Err        error
}

// Changed reports whether the live tree was touched.
func (r Result) Changed() bool {
	return r.Added+r.Removed+r.Relabelled > 0
}

// Dispatcher applies reloaded definitions to a live registry. Entries keep
// their menu node across reloads as long as their ID path and kind survive,
// so open groups and the current selection stay valid.
type Dispatcher struct {
	registry *definition.Registry
}

func New(r *definition.Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

// Handle applies a watcher event.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	if evt.Err != nil {
		events.Definition.Error(evt.Path, evt.Err)
		return Result{Err: evt.Err}
	}
	res := d.Apply(evt.Definition)
	events.Definition.Reload(evt.Path, res.Added, res.Removed, res.Relabelled)
	return res
}

// Apply reconciles def onto the live tree.
func (d *Dispatcher) Apply(def definition.Definition) Result {
	var res Result
	root := d.registry.Root()
	if root.Entry.Label != def.Title {
		root.Entry.Label = def.Title
		root.Item.SetLabel(def.Title)
		res.Relabelled++
	}
	root.Entry.Items = def.Items
	d.registry.SetBackAtBottom(def.BackAtBottom)
	d.sync(root, def.Items, &res)
	return res
}

func (d *Dispatcher) sync(parent *definition.Node, entries []definition.Entry, res *Result) {
	group, ok := parent.Group()
	if !ok {
		return
	}

	wanted := make(map[string]definition.Entry, len(entries))
	for _, e := range entries {
		wanted[e.ID] = e
	}

	// Drop entries that disappeared or changed kind.
	for _, child := range group.Children() {
		node := d.nodeFor(parent, child)
		if node == nil {
			continue
		}
		e, keep := wanted[node.Entry.ID]
		if keep && sameKind(node.Entry, e) {
			continue
		}
		group.RemoveChild(child)
		d.registry.Forget(node)
		res.Removed++
	}

	// Update survivors in place.
	for _, e := range entries {
		node, ok := parent.Children[e.ID]
		if !ok {
			continue
		}
		if node.Entry.Label != e.Label {
			node.Item.SetLabel(e.Label)
			res.Relabelled++
		}
		node.Entry = e
		if e.IsGroup() {
			if g, ok := node.Group(); ok {
				g.SetBackAtBottom(e.BackAtBottom || d.registry.BackAtBottom())
			}
			d.sync(node, e.Items, res)
		}
	}

	d.order(parent, group, entries, res)
}

// order makes the group's children follow entries. Groups only append, so
// the first child out of place and everything after it are detached and
// re-added in order; new entries are created on the way.
func (d *Dispatcher) order(parent *definition.Node, group *menu.Group, entries []definition.Entry, res *Result) {
	current := group.Children()
	keep := 0
	for keep < len(current) && keep < len(entries) {
		node, ok := parent.Children[entries[keep].ID]
		if !ok || node.Item != current[keep] {
			break
		}
		keep++
	}
	for _, child := range current[keep:] {
		group.RemoveChild(child)
	}
	for _, e := range entries[keep:] {
		node, ok := parent.Children[e.ID]
		if !ok {
			node = d.registry.NewNode(parent.ID, e)
			res.Added++
		}
		group.AddChild(node.Item)
	}
}

func (d *Dispatcher) nodeFor(parent *definition.Node, item menu.Node) *definition.Node {
	for _, node := range parent.Children {
		if node.Item == item {
			return node
		}
	}
	return nil
}

func sameKind(a, b definition.Entry) bool {
	return a.IsGroup() == b.IsGroup() && a.IsCommand() == b.IsCommand()
}
