package command

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/input"
	"placement-engine/internal/logger"
	"placement-engine/internal/numeric"
	"placement-engine/internal/transform"
)

// Provenance records where a command's constraint set came from.
type Provenance string

const (
	ProvenanceKeys  Provenance = "keys"
	ProvenanceModal Provenance = "modal"
)

// Command is the normalized per-frame output of the router. Deltas may be zero; the
// mode handler applies whatever is present.
type Command struct {
	Move   rl.Vector3 // manual nudge delta, world units
	Rotate rl.Vector3 // radians per axis
	Scale  float32    // uniform multiplier delta
	Height float32    // vertical offset delta

	Confirm bool
	Cancel  bool

	CycleAsset    int // +1 / -1 to advance or retreat through the asset list
	CycleStrategy bool
	ToggleAlign   bool

	Axes       [3]bool
	Provenance Provenance
	Mods       transform.Modifiers

	// Numeric override confirmed this frame, if any.
	HasNumeric    bool
	NumericValue  float32
	NumericPrefix numeric.Prefix
	NumericTarget numeric.Target

	Meta map[string]string
}

// IsZero reports whether the command carries nothing worth acting on (used to keep
// debug logging quiet).
func (c Command) IsZero() bool {
	return c.Move == (rl.Vector3{}) && c.Rotate == (rl.Vector3{}) &&
		c.Scale == 0 && c.Height == 0 && !c.Confirm && !c.Cancel && !c.HasNumeric
}

// ModalHandler is implemented by each mode handler; the router invokes the method for
// the active modal so mouse-driven constrained movement is applied that frame.
type ModalHandler interface {
	ApplyPositionModal(cmd *Command)
	ApplyRotationModal(cmd *Command)
	ApplyScaleModal(cmd *Command)
}

// Steps are the base step sizes the router turns taps/repeats/wheel notches into,
// derived from the session's settings snapshot each frame.
type Steps struct {
	Rotation float32 // radians
	Scale    float32
	Height   float32
	Position float32
}

// Router turns the input snapshot plus control-modal state into one Command per frame
// and feeds tap context into the numeric engine.
type Router struct {
	log     *logger.Logger
	num     *numeric.Engine
	Verbose bool

	fineMod    string
	largeMod   string
	reverseMod string
}

// NewRouter returns a router feeding the given numeric engine. log may be nil.
func NewRouter(log *logger.Logger, num *numeric.Engine) *Router {
	return &Router{log: log, num: num, fineMod: "ctrl", largeMod: "shift", reverseMod: "alt"}
}

// Route processes one frame. pos is the current object/group position (captured as
// the constraint origin on the first axis toggle). handler receives the modal
// callback for the active modal; it may be nil when no mode is active.
func (r *Router) Route(snap *input.Snapshot, ctrl *ControlState, steps Steps, pos rl.Vector3, handler ModalHandler, now time.Time) Command {
	cmd := Command{Meta: map[string]string{}}
	cmd.Mods = transform.Modifiers{
		Fine:    snap.ModifierHeld(r.fineMod),
		Large:   snap.ModifierHeld(r.largeMod),
		Reverse: snap.ModifierHeld(r.reverseMod),
	}

	// Modal selection and axis toggles come first so the rest of the frame sees the
	// updated constraint set.
	if snap.JustPressed(input.ActionModalPosition) {
		ctrl.SelectModal(ModalPosition)
	}
	if snap.JustPressed(input.ActionModalRotation) {
		ctrl.SelectModal(ModalRotation)
	}
	if snap.JustPressed(input.ActionModalScale) {
		ctrl.SelectModal(ModalScale)
	}
	if snap.JustPressed(input.ActionAxisX) {
		ctrl.ToggleAxis(transform.AxisX, pos)
	}
	if snap.JustPressed(input.ActionAxisY) {
		ctrl.ToggleAxis(transform.AxisY, pos)
	}
	if snap.JustPressed(input.ActionAxisZ) {
		ctrl.ToggleAxis(transform.AxisZ, pos)
	}

	r.routeNumeric(snap, &cmd, now)

	// Confirm/cancel, unless the numeric engine consumed them above.
	if !cmd.HasNumeric {
		if snap.Tapped(input.ActionConfirm) || snap.LeftClick() {
			cmd.Confirm = true
		}
	}
	if snap.Tapped(input.ActionCancel) || snap.RightClick() {
		if r.num.Capturing() || r.num.ContextSet() {
			r.num.Cancel()
		} else {
			cmd.Cancel = true
			ctrl.Deactivate()
		}
	}

	if snap.Tapped(input.ActionAssetNext) {
		cmd.CycleAsset++
	}
	if snap.Tapped(input.ActionAssetPrev) {
		cmd.CycleAsset--
	}
	if snap.Tapped(input.ActionCycleStrategy) {
		cmd.CycleStrategy = true
	}
	if snap.Tapped(input.ActionSurfaceAlign) {
		cmd.ToggleAlign = true
	}

	r.routeSteps(snap, ctrl, steps, &cmd, now)
	r.routeWheel(snap, ctrl, steps, &cmd)

	cmd.Axes = ctrl.Axes()
	if ctrl.Explicit() {
		cmd.Provenance = ProvenanceModal
	} else {
		cmd.Provenance = ProvenanceKeys
	}
	cmd.Meta["modal"] = ctrl.Active().String()

	if handler != nil && ctrl.Explicit() {
		switch ctrl.Active() {
		case ModalPosition:
			handler.ApplyPositionModal(&cmd)
		case ModalRotation:
			handler.ApplyRotationModal(&cmd)
		case ModalScale:
			handler.ApplyScaleModal(&cmd)
		}
	}

	if r.Verbose && r.log != nil && !cmd.IsZero() {
		r.log.Infof("command: move=%v rotate=%v scale=%.3f height=%.3f confirm=%v cancel=%v axes=%v src=%s",
			cmd.Move, cmd.Rotate, cmd.Scale, cmd.Height, cmd.Confirm, cmd.Cancel, cmd.Axes, cmd.Provenance)
	}
	return cmd
}

// SetModifierNames configures which modifier pairs play the fine/large/reverse roles.
func (r *Router) SetModifierNames(fine, large, reverse string) {
	r.fineMod, r.largeMod, r.reverseMod = fine, large, reverse
}

// routeNumeric feeds typed characters and confirm edges into the numeric engine and
// surfaces a confirmed override on the command.
func (r *Router) routeNumeric(snap *input.Snapshot, cmd *Command, now time.Time) {
	r.num.TypeChars(snap.Chars(), now)
	if snap.JustPressed(input.ActionBackspace) {
		r.num.Backspace()
	}
	if !r.num.Capturing() {
		return
	}
	if snap.Tapped(input.ActionConfirm) || snap.LeftClick() {
		r.confirmNumeric(cmd)
	}
}

func (r *Router) confirmNumeric(cmd *Command) {
	v, prefix, target, ok := r.num.Confirm()
	if !ok {
		return
	}
	cmd.HasNumeric = true
	cmd.NumericValue = v
	cmd.NumericPrefix = prefix
	cmd.NumericTarget = target
	cmd.Meta["numeric"] = fmt.Sprintf("%s %v", target, v)
}

// routeSteps turns taps and repeat ticks into deltas, and taps into numeric context.
// A tap that confirms an in-progress numeric entry produces no step of its own.
func (r *Router) routeSteps(snap *input.Snapshot, ctrl *ControlState, steps Steps, cmd *Command, now time.Time) {
	rotAxis := transform.AxisY
	rotTarget := numeric.RotateY
	if axis, one := ctrl.ConstrainedAxis(); one {
		rotAxis = axis
		switch axis {
		case transform.AxisX:
			rotTarget = numeric.RotateX
		case transform.AxisZ:
			rotTarget = numeric.RotateZ
		}
	}

	type stepKey struct {
		action input.Action
		target numeric.Target
		apply  func(float32)
		base   float32
		invert bool
	}
	keys := []stepKey{
		{input.ActionRotateRight, rotTarget, func(d float32) { addAxis(&cmd.Rotate, rotAxis, d) }, steps.Rotation, false},
		{input.ActionRotateLeft, rotTarget, func(d float32) { addAxis(&cmd.Rotate, rotAxis, d) }, steps.Rotation, true},
		{input.ActionHeightUp, numeric.Height, func(d float32) { cmd.Height += d }, steps.Height, false},
		{input.ActionHeightDown, numeric.Height, func(d float32) { cmd.Height += d }, steps.Height, true},
		{input.ActionScaleUp, numeric.ScaleUniform, func(d float32) { cmd.Scale += d }, steps.Scale, false},
		{input.ActionScaleDown, numeric.ScaleUniform, func(d float32) { cmd.Scale += d }, steps.Scale, true},
		{input.ActionNudgeRight, numeric.MoveX, func(d float32) { cmd.Move.X += d }, steps.Position, false},
		{input.ActionNudgeLeft, numeric.MoveX, func(d float32) { cmd.Move.X += d }, steps.Position, true},
		{input.ActionNudgeForward, numeric.MoveZ, func(d float32) { cmd.Move.Z += d }, steps.Position, true},
		{input.ActionNudgeBack, numeric.MoveZ, func(d float32) { cmd.Move.Z += d }, steps.Position, false},
	}
	for _, k := range keys {
		fired := snap.RepeatFired(k.action)
		tapped := snap.Tapped(k.action)
		if !fired && !tapped {
			continue
		}
		if tapped {
			if r.num.HandleTap(k.target, now) {
				r.confirmNumeric(cmd)
				continue
			}
		}
		d := transform.Step(k.base, cmd.Mods)
		if k.invert {
			d = -d
		}
		k.apply(d)
	}
}

// routeWheel folds scroll notches into the explicitly active modal's delta.
func (r *Router) routeWheel(snap *input.Snapshot, ctrl *ControlState, steps Steps, cmd *Command) {
	w := snap.WheelDelta()
	if w == 0 || !ctrl.Explicit() {
		return
	}
	switch ctrl.Active() {
	case ModalRotation:
		axis := transform.AxisY
		if a, one := ctrl.ConstrainedAxis(); one {
			axis = a
		}
		addAxis(&cmd.Rotate, axis, w*transform.Step(steps.Rotation, cmd.Mods))
	case ModalScale:
		cmd.Scale += w * transform.Step(steps.Scale, cmd.Mods)
	case ModalPosition:
		cmd.Height += w * transform.Step(steps.Height, cmd.Mods)
	}
}

func addAxis(v *rl.Vector3, axis transform.Axis, d float32) {
	switch axis {
	case transform.AxisX:
		v.X += d
	case transform.AxisY:
		v.Y += d
	default:
		v.Z += d
	}
}
