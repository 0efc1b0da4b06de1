package modes

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/command"
	"placement-engine/internal/numeric"
	"placement-engine/internal/transform"
)

// The calculation services are stateless, so both handlers share one set.
var (
	posSvc transform.PositionService
	rotSvc transform.RotationService
	sclSvc transform.ScaleService
)

// applyAdjustSteps folds the rotation and scale deltas shared by both modes.
func applyAdjustSteps(st *transform.State, cmd command.Command) {
	if cmd.Rotate.X != 0 {
		rotSvc.AddManual(st, transform.AxisX, cmd.Rotate.X)
	}
	if cmd.Rotate.Y != 0 {
		rotSvc.AddManual(st, transform.AxisY, cmd.Rotate.Y)
	}
	if cmd.Rotate.Z != 0 {
		rotSvc.AddManual(st, transform.AxisZ, cmd.Rotate.Z)
	}
	if cmd.Scale != 0 {
		sclSvc.AddStep(st, cmd.Scale)
	}
}

// applySteps folds a command's discrete deltas into a placement session's state.
// Movement goes into the offset accumulators; the next strategy hit folds them in.
func applySteps(st *transform.State, cmd command.Command) {
	applyAdjustSteps(st, cmd)
	if cmd.Height != 0 {
		posSvc.AdjustHeight(st, cmd.Height)
	}
	if cmd.Move.X != 0 {
		posSvc.Nudge(st, transform.AxisX, cmd.Move.X)
	}
	if cmd.Move.Y != 0 {
		posSvc.Nudge(st, transform.AxisY, cmd.Move.Y)
	}
	if cmd.Move.Z != 0 {
		posSvc.Nudge(st, transform.AxisZ, cmd.Move.Z)
	}
}

// applyGroupSteps folds deltas for a transform session. Movement is applied straight
// to the group target rather than the offset accumulators, so keyboard movement works
// whether or not a mouse ray is driving the group.
func applyGroupSteps(st *transform.State, cmd command.Command) {
	applyAdjustSteps(st, cmd)
	st.TargetPosition = rl.Vector3Add(st.TargetPosition, cmd.Move)
	st.TargetPosition.Y += cmd.Height
}

// applyNumeric folds a confirmed numeric override into a placement session's state.
// Rotation values are typed in degrees; everything else in world units / multipliers.
func applyNumeric(st *transform.State, cmd command.Command) {
	if !cmd.HasNumeric {
		return
	}
	v, prefix := cmd.NumericValue, cmd.NumericPrefix
	switch cmd.NumericTarget {
	case numeric.RotateX:
		setRotationDeg(st, transform.AxisX, v, prefix)
	case numeric.RotateY:
		setRotationDeg(st, transform.AxisY, v, prefix)
	case numeric.RotateZ:
		setRotationDeg(st, transform.AxisZ, v, prefix)
	case numeric.ScaleUniform:
		sclSvc.SetUniform(st, numeric.Apply(st.ScaleMultiplier, v, prefix))
	case numeric.Height:
		st.HeightOffset = numeric.Apply(st.HeightOffset, v, prefix)
	case numeric.MoveX:
		st.ManualPositionOffset.X = numeric.Apply(st.ManualPositionOffset.X, v, prefix)
	case numeric.MoveY:
		st.ManualPositionOffset.Y = numeric.Apply(st.ManualPositionOffset.Y, v, prefix)
	case numeric.MoveZ:
		st.ManualPositionOffset.Z = numeric.Apply(st.ManualPositionOffset.Z, v, prefix)
	}
}

// applyGroupNumeric is the transform-session counterpart: movement targets act on the
// group's world position, so an absolute entry moves the group to that coordinate.
func applyGroupNumeric(st *transform.State, cmd command.Command) {
	if !cmd.HasNumeric {
		return
	}
	v, prefix := cmd.NumericValue, cmd.NumericPrefix
	switch cmd.NumericTarget {
	case numeric.Height, numeric.MoveY:
		st.TargetPosition.Y = numeric.Apply(st.TargetPosition.Y, v, prefix)
	case numeric.MoveX:
		st.TargetPosition.X = numeric.Apply(st.TargetPosition.X, v, prefix)
	case numeric.MoveZ:
		st.TargetPosition.Z = numeric.Apply(st.TargetPosition.Z, v, prefix)
	default:
		applyNumeric(st, cmd)
	}
}

func setRotationDeg(st *transform.State, axis transform.Axis, v float32, prefix numeric.Prefix) {
	var cur float32
	switch axis {
	case transform.AxisX:
		cur = st.ManualRotationOffset.X
	case transform.AxisY:
		cur = st.ManualRotationOffset.Y
	default:
		cur = st.ManualRotationOffset.Z
	}
	deg := numeric.Apply(cur*rl.Rad2deg, v, prefix)
	rotSvc.SetManual(st, axis, deg*rl.Deg2rad)
}

// constrainPosition projects the computed target back onto the constrained line or
// plane: axes without a constraint bit keep the origin's coordinate.
func constrainPosition(ctrl *command.ControlState, st *transform.State) {
	origin, ok := ctrl.ConstraintOrigin()
	if !ok {
		return
	}
	axes := ctrl.Axes()
	if !axes[transform.AxisX] {
		st.TargetPosition.X = origin.X
	}
	if !axes[transform.AxisY] {
		st.TargetPosition.Y = origin.Y
	}
	if !axes[transform.AxisZ] {
		st.TargetPosition.Z = origin.Z
	}
}
