package modes

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/command"
	"placement-engine/internal/placement"
	"placement-engine/internal/session"
	"placement-engine/internal/transform"
)

// TransformHandler drives an active transform session over the selected objects.
// Rotation and scale pivot around the group centroid: objects orbit it while each
// keeps its own orientation offset relative to the group.
type TransformHandler struct {
	frame      *Frame
	strategies *placement.Manager
	alignOn    bool
	lastMouse  rl.Vector2
	haveMouse  bool
}

// NewTransformHandler returns an idle handler using the given strategies for
// mouse-driven group movement.
func NewTransformHandler(strategies *placement.Manager) *TransformHandler {
	return &TransformHandler{strategies: strategies}
}

// BeginFrame stores the frame context before router dispatch.
func (h *TransformHandler) BeginFrame(f *Frame) {
	h.frame = f
}

// Enter captures the payload targets' centroid as the movement origin and registers
// every target with the interpolator.
func (h *TransformHandler) Enter(f *Frame) error {
	p := f.Session.TransformPayload()
	if p == nil {
		return fmt.Errorf("transform: session has no transform payload")
	}
	if len(p.Targets) == 0 {
		return fmt.Errorf("transform: empty selection")
	}
	h.frame = f
	h.alignOn = false
	h.haveMouse = false

	var sum rl.Vector3
	for _, t := range p.Targets {
		sum = rl.Vector3Add(sum, t.Original.Position)
	}
	p.Centroid = rl.Vector3Scale(sum, 1/float32(len(p.Targets)))

	st := f.Session.State
	st.Position = p.Centroid
	st.TargetPosition = p.Centroid
	st.BaseHeight = p.Centroid.Y

	for _, t := range p.Targets {
		f.Lerp.Track(t.Node.ID, t.Node, t.Original)
	}
	return nil
}

// OnFrame consumes this frame's command. Cancel reverts every target to its original
// transform immediately and exits in the same frame.
func (h *TransformHandler) OnFrame(f *Frame, cmd command.Command) {
	p := f.Session.TransformPayload()
	if p == nil {
		f.Log.Warnf("transform: payload missing, exiting")
		f.Session.End()
		return
	}
	st := f.Session.State

	if cmd.Cancel {
		h.revert(f, p)
		f.Session.End()
		return
	}

	if cmd.ToggleAlign {
		h.alignOn = !h.alignOn
		rotSvc.SetSurfaceAlignment(st, h.alignOn)
	}

	st.Snap.HalfStep = cmd.Mods.Fine
	applyGroupSteps(st, cmd)
	applyGroupNumeric(st, cmd)

	// The group follows the mouse only while the position modal is explicitly active;
	// otherwise rotation/scale adjustments keep the centroid planted.
	if f.RayOK && f.Control.Explicit() && f.Control.Active() == command.ModalPosition {
		if strat := h.strategies.Active(); strat != nil {
			exclude := placement.ExclusionSet{}
			for _, t := range p.Targets {
				t.Node.Descendants(exclude)
			}
			res := strat.CalculatePosition(f.RayOrigin, f.RayDir, exclude)
			yLocked := f.Control.AxisEnabled(transform.AxisY)
			posSvc.Apply(st, res, yLocked, cmd.Mods.Fine)
		}
	}
	constrainPosition(f.Control, st)
	if h.alignOn {
		rotSvc.SetSurfaceAlignment(st, true)
	}

	h.retarget(f, p)

	if cmd.Confirm {
		h.confirm(f, p)
		return
	}

	h.lastMouse = f.Mouse
	h.haveMouse = true
}

// Exit reverts any uncommitted movement.
func (h *TransformHandler) Exit(f *Frame) {
	if p := f.Session.TransformPayload(); p != nil {
		h.revert(f, p)
	}
}

// retarget recomputes every target's pose from the session state: positions orbit the
// centroid by the final rotation, rotations advance by the same angles, scale is an
// additive offset around each original.
func (h *TransformHandler) retarget(f *Frame, p *session.TransformPayload) {
	st := f.Session.State
	rot := st.FinalRotation()
	q := rl.QuaternionFromEuler(rot.X, rot.Y, rot.Z)
	for _, t := range p.Targets {
		offset := rl.Vector3Subtract(t.Original.Position, p.Centroid)
		orbited := rl.Vector3RotateByQuaternion(offset, q)
		pose := transform.Pose{
			Position: rl.Vector3Add(st.TargetPosition, orbited),
			Rotation: rl.Vector3Add(t.Original.Rotation, rot),
			Scale:    sclSvc.TargetFor(st, t.Original.Scale),
		}
		f.Lerp.SetTarget(t.Node.ID, pose)
	}
}

// confirm snaps every target to its final pose and records one undoable action
// covering the whole group.
func (h *TransformHandler) confirm(f *Frame, p *session.TransformPayload) {
	before := make([]transform.Pose, len(p.Targets))
	after := make([]transform.Pose, len(p.Targets))
	nodes := make([]*session.TargetObject, len(p.Targets))
	for i := range p.Targets {
		t := &p.Targets[i]
		f.Lerp.ApplyImmediately(t.Node.ID)
		f.Lerp.Untrack(t.Node.ID)
		before[i] = t.Original
		after[i] = t.Node.Pose()
		nodes[i] = t
	}
	f.World.Push(fmt.Sprintf("transform %d objects", len(p.Targets)),
		func() {
			for i, t := range nodes {
				t.Node.SetPose(after[i])
			}
		},
		func() {
			for i, t := range nodes {
				t.Node.SetPose(before[i])
			}
		},
	)
	f.Session.End()
}

// revert puts every target back exactly where it started.
func (h *TransformHandler) revert(f *Frame, p *session.TransformPayload) {
	for _, t := range p.Targets {
		f.Lerp.SetTarget(t.Node.ID, t.Original)
		f.Lerp.ApplyImmediately(t.Node.ID)
		f.Lerp.Untrack(t.Node.ID)
	}
}

// ApplyPositionModal records provenance; group movement is handled in OnFrame while
// the position modal is active.
func (h *TransformHandler) ApplyPositionModal(cmd *command.Command) {
	cmd.Meta["modal_applied"] = "position"
}

// ApplyRotationModal maps horizontal mouse travel onto the constrained (or Y) axis.
func (h *TransformHandler) ApplyRotationModal(cmd *command.Command) {
	cmd.Meta["modal_applied"] = "rotation"
	if h.frame == nil || !h.haveMouse {
		return
	}
	dx := h.frame.Mouse.X - h.lastMouse.X
	axis := transform.AxisY
	if a, one := h.frame.Control.ConstrainedAxis(); one {
		axis = a
	}
	switch axis {
	case transform.AxisX:
		cmd.Rotate.X += dx * mouseRotatePerPixel
	case transform.AxisZ:
		cmd.Rotate.Z += dx * mouseRotatePerPixel
	default:
		cmd.Rotate.Y += dx * mouseRotatePerPixel
	}
}

// ApplyScaleModal maps horizontal mouse travel onto the uniform multiplier.
func (h *TransformHandler) ApplyScaleModal(cmd *command.Command) {
	cmd.Meta["modal_applied"] = "scale"
	if h.frame == nil || !h.haveMouse {
		return
	}
	dx := h.frame.Mouse.X - h.lastMouse.X
	cmd.Scale += dx * mouseScalePerPixel
}
