package command

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/transform"
)

// Modal is the active manipulation modal: subsequent mouse/wheel input is
// reinterpreted for it until deactivated.
type Modal int

const (
	ModalPosition Modal = iota
	ModalRotation
	ModalScale
)

func (m Modal) String() string {
	switch m {
	case ModalRotation:
		return "rotation"
	case ModalScale:
		return "scale"
	}
	return "position"
}

// ControlState tracks which modal is active, whether it was explicitly invoked, the
// three independently toggleable axis constraints, and the world-space origin captured
// when the first constraint was enabled. Reset whenever a session begins or ends.
type ControlState struct {
	active    Modal
	explicit  bool
	axes      [3]bool
	origin    rl.Vector3
	hasOrigin bool
}

// NewControlState returns the initial state: Position modal, no constraints, not
// explicitly activated.
func NewControlState() *ControlState {
	return &ControlState{}
}

// SelectModal switches the active modal and clears all axis constraints.
func (c *ControlState) SelectModal(m Modal) {
	c.active = m
	c.explicit = true
	c.clearAxes()
}

// Deactivate returns to the default (implicit Position) modal and clears constraints.
// Called on cancel / right-click / ESC.
func (c *ControlState) Deactivate() {
	c.active = ModalPosition
	c.explicit = false
	c.clearAxes()
}

// Reset restores the initial state. Sessions call this on begin and end.
func (c *ControlState) Reset() {
	*c = ControlState{}
}

// ToggleAxis flips one axis constraint. The first axis enabled while no other axis is
// active captures pos as the constraint origin for later line/plane projection.
func (c *ControlState) ToggleAxis(axis transform.Axis, pos rl.Vector3) {
	if !c.axes[0] && !c.axes[1] && !c.axes[2] && !c.axes[axis] {
		c.origin = pos
		c.hasOrigin = true
	}
	c.axes[axis] = !c.axes[axis]
	if !c.axes[0] && !c.axes[1] && !c.axes[2] {
		c.hasOrigin = false
	}
}

func (c *ControlState) clearAxes() {
	c.axes = [3]bool{}
	c.hasOrigin = false
}

// Active returns the current modal.
func (c *ControlState) Active() Modal { return c.active }

// Explicit reports whether the modal was explicitly selected rather than defaulted.
func (c *ControlState) Explicit() bool { return c.explicit }

// AxisEnabled reports one constraint bit.
func (c *ControlState) AxisEnabled(axis transform.Axis) bool { return c.axes[axis] }

// Axes returns the constraint mask (X, Y, Z). Any combination may be active.
func (c *ControlState) Axes() [3]bool { return c.axes }

// ConstraintOrigin returns the captured origin and whether one is set.
func (c *ControlState) ConstraintOrigin() (rl.Vector3, bool) { return c.origin, c.hasOrigin }

// ConstrainedAxis returns the single constrained axis when exactly one is enabled.
func (c *ControlState) ConstrainedAxis() (transform.Axis, bool) {
	count := 0
	var found transform.Axis
	for i, on := range c.axes {
		if on {
			count++
			found = transform.Axis(i)
		}
	}
	return found, count == 1
}
