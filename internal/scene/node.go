package scene

import (
	"github.com/google/uuid"
	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/transform"
)

// Node is one object in the scene tree: a pose, an optional collision box, children.
// Nodes are identified by uuid handles so exclusion sets and undo records survive
// pointer churn.
type Node struct {
	ID   uuid.UUID
	Name string

	pose transform.Pose

	// HasCollider marks the node as collision-bearing; Size is the unscaled box
	// extents centered on the node.
	HasCollider bool
	Size        rl.Vector3

	parent   *Node
	children []*Node
}

// NewNode returns a detached node with a fresh handle and unit-cube collider.
func NewNode(name string) *Node {
	return &Node{
		ID:          uuid.New(),
		Name:        name,
		pose:        transform.DefaultPose(),
		HasCollider: true,
		Size:        rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Pose returns the node's current pose.
func (n *Node) Pose() transform.Pose { return n.pose }

// SetPose writes the node's pose. Satisfies the interpolator's Poseable.
func (n *Node) SetPose(p transform.Pose) { n.pose = p }

// AddChild attaches a child, detaching it from any previous parent.
func (n *Node) AddChild(c *Node) {
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) removeChild(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// Children returns the direct children.
func (n *Node) Children() []*Node { return n.children }

// Descendants appends the handles of this node and every descendant to set. Used to
// build raycast exclusion sets that cover all collision-bearing descendants.
func (n *Node) Descendants(set map[uuid.UUID]struct{}) {
	set[n.ID] = struct{}{}
	for _, c := range n.children {
		c.Descendants(set)
	}
}

// AABB returns the node's world-space collision box: extents from Size scaled by the
// pose, centered on the position. Zero extents fall back to one unit.
func (n *Node) AABB() rl.BoundingBox {
	sx := n.Size.X * n.pose.Scale.X
	sy := n.Size.Y * n.pose.Scale.Y
	sz := n.Size.Z * n.pose.Scale.Z
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	half := rl.Vector3{X: sx * 0.5, Y: sy * 0.5, Z: sz * 0.5}
	p := n.pose.Position
	return rl.NewBoundingBox(
		rl.NewVector3(p.X-half.X, p.Y-half.Y, p.Z-half.Z),
		rl.NewVector3(p.X+half.X, p.Y+half.Y, p.Z+half.Z),
	)
}
