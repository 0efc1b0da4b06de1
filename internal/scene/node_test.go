package scene

import (
	"testing"

	"github.com/google/uuid"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-engine/internal/transform"
)

func TestAABBScalesAndCenters(t *testing.T) {
	n := NewNode("box")
	n.Size = rl.Vector3{X: 2, Y: 1, Z: 4}
	pose := n.Pose()
	pose.Position = rl.Vector3{X: 10, Y: 0, Z: -5}
	pose.Scale = rl.Vector3{X: 1, Y: 2, Z: 0.5}
	n.SetPose(pose)

	box := n.AABB()
	assert.InDelta(t, 9, box.Min.X, 1e-5)
	assert.InDelta(t, 11, box.Max.X, 1e-5)
	assert.InDelta(t, -1, box.Min.Y, 1e-5)
	assert.InDelta(t, 1, box.Max.Y, 1e-5)
	assert.InDelta(t, -6, box.Min.Z, 1e-5)
	assert.InDelta(t, -4, box.Max.Z, 1e-5)
}

func TestAABBZeroExtentsFallBackToUnit(t *testing.T) {
	n := NewNode("point")
	n.Size = rl.Vector3{}
	box := n.AABB()
	assert.InDelta(t, 1, box.Max.X-box.Min.X, 1e-5)
	assert.InDelta(t, 1, box.Max.Y-box.Min.Y, 1e-5)
}

func TestDescendantsCoversSubtree(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	set := make(map[uuid.UUID]struct{})
	parent.Descendants(set)
	assert.Len(t, set, 3)
	assert.Contains(t, set, grandchild.ID)
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Equal(t, c, b.Children()[0])
}

func TestWorldAddNodeUndoRedo(t *testing.T) {
	w := NewWorld(nil)
	n := NewNode("cube")
	w.AddNode(n)
	require.NotNil(t, w.Node(n.ID))

	w.Undo()
	assert.Nil(t, w.Node(n.ID))

	w.Redo()
	assert.NotNil(t, w.Node(n.ID))
}

func TestWorldRemoveNodeUndo(t *testing.T) {
	w := NewWorld(nil)
	n := NewNode("cube")
	w.AddNode(n)
	w.RemoveNode(n.ID)
	assert.Nil(t, w.Node(n.ID))

	w.Undo()
	assert.NotNil(t, w.Node(n.ID))
}

func TestWorldPushClearsRedo(t *testing.T) {
	w := NewWorld(nil)
	a := NewNode("a")
	w.AddNode(a)
	w.Undo()

	b := NewNode("b")
	w.AddNode(b)
	w.Redo() // stale: must be a no-op
	assert.Nil(t, w.Node(a.ID))
	assert.NotNil(t, w.Node(b.ID))
}

func TestWorldAttachBypassesHistory(t *testing.T) {
	w := NewWorld(nil)
	preview := NewNode("preview")
	w.Attach(preview)
	w.Undo() // nothing recorded: preview must survive
	assert.NotNil(t, w.Node(preview.ID))

	w.Detach(preview.ID)
	assert.Nil(t, w.Node(preview.ID))
}

func TestWorldCollidersSkipNonColliding(t *testing.T) {
	w := NewWorld(nil)
	solid := NewNode("solid")
	ghost := NewNode("ghost")
	ghost.HasCollider = false
	w.Attach(solid)
	w.Attach(ghost)

	cols := w.Colliders()
	require.Len(t, cols, 1)
	assert.Equal(t, solid.ID, cols[0].ID)
}

func TestWorldSelectionSkipsStaleHandles(t *testing.T) {
	w := NewWorld(nil)
	n := NewNode("cube")
	w.AddNode(n)
	w.Select(n.ID, uuid.New())
	assert.Len(t, w.Selection(), 1)

	w.Detach(n.ID)
	assert.Empty(t, w.Selection())
}

func TestNodeImplementsPoseable(t *testing.T) {
	n := NewNode("cube")
	p := transform.DefaultPose()
	p.Position.X = 3
	n.SetPose(p)
	assert.InDelta(t, 3, n.Pose().Position.X, 1e-6)
}
