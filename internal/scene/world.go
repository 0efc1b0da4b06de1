package scene

import (
	"github.com/google/uuid"

	"placement-engine/internal/logger"
	"placement-engine/internal/placement"
)

// undoAction is a do/undo pair recorded on the undo stack.
type undoAction struct {
	name string
	do   func()
	undo func()
}

// World owns the scene tree, the selection set and the undo stack. Node add/remove go
// through undoable actions so the host's history stays consistent.
type World struct {
	log       *logger.Logger
	root      *Node
	nodes     map[uuid.UUID]*Node
	selection []uuid.UUID

	undo []undoAction
	redo []undoAction
}

// NewWorld returns a world with an empty root node.
func NewWorld(log *logger.Logger) *World {
	root := NewNode("root")
	root.HasCollider = false
	return &World{
		log:   log,
		root:  root,
		nodes: map[uuid.UUID]*Node{root.ID: root},
	}
}

// Root returns the scene root.
func (w *World) Root() *Node { return w.root }

// Node resolves a handle, or nil.
func (w *World) Node(id uuid.UUID) *Node { return w.nodes[id] }

// AddNode attaches n under the root as an undoable action.
func (w *World) AddNode(n *Node) {
	w.Push("add "+n.Name,
		func() { w.attach(n) },
		func() { w.detach(n) },
	)
}

// RemoveNode detaches a node as an undoable action. Unknown handles warn and no-op.
func (w *World) RemoveNode(id uuid.UUID) {
	n := w.nodes[id]
	if n == nil || n == w.root {
		if w.log != nil {
			w.log.Warnf("scene: remove of unknown node %s", id)
		}
		return
	}
	w.Push("remove "+n.Name,
		func() { w.detach(n) },
		func() { w.attach(n) },
	)
}

// Attach adds a node under the root without touching the undo stack (previews that
// must never appear in history).
func (w *World) Attach(n *Node) { w.attach(n) }

// Detach removes a node without touching the undo stack.
func (w *World) Detach(id uuid.UUID) {
	if n := w.nodes[id]; n != nil && n != w.root {
		w.detach(n)
	}
}

func (w *World) attach(n *Node) {
	w.root.AddChild(n)
	w.index(n)
}

func (w *World) detach(n *Node) {
	w.root.removeChild(n)
	w.unindex(n)
}

func (w *World) index(n *Node) {
	w.nodes[n.ID] = n
	for _, c := range n.Children() {
		w.index(c)
	}
}

func (w *World) unindex(n *Node) {
	delete(w.nodes, n.ID)
	for _, c := range n.Children() {
		w.unindex(c)
	}
}

// Push executes do and records the pair on the undo stack, clearing the redo stack.
func (w *World) Push(name string, do, undo func()) {
	do()
	w.undo = append(w.undo, undoAction{name: name, do: do, undo: undo})
	w.redo = nil
}

// Undo reverts the most recent action, if any.
func (w *World) Undo() {
	if len(w.undo) == 0 {
		return
	}
	a := w.undo[len(w.undo)-1]
	w.undo = w.undo[:len(w.undo)-1]
	a.undo()
	w.redo = append(w.redo, a)
}

// Redo re-applies the most recently undone action, if any.
func (w *World) Redo() {
	if len(w.redo) == 0 {
		return
	}
	a := w.redo[len(w.redo)-1]
	w.redo = w.redo[:len(w.redo)-1]
	a.do()
	w.undo = append(w.undo, a)
}

// Select replaces the selection set.
func (w *World) Select(ids ...uuid.UUID) {
	w.selection = append(w.selection[:0], ids...)
}

// Selection returns the currently selected nodes, skipping stale handles.
func (w *World) Selection() []*Node {
	out := make([]*Node, 0, len(w.selection))
	for _, id := range w.selection {
		if n := w.nodes[id]; n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Colliders returns every collision-bearing node's box for the raycast strategy.
// Exclusion is the strategy's job; this always returns the full set.
func (w *World) Colliders() []placement.Collider {
	var out []placement.Collider
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.HasCollider {
			out = append(out, placement.Collider{ID: n.ID, Box: n.AABB()})
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(w.root)
	return out
}
