package transform

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MinScale is the smallest representable scale multiplier. Zero or negative scale is
// never representable; every write path clamps against this.
const MinScale = 0.01

// Axis indexes the three world axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// Pose is a plain position/rotation/scale triple. Rotation is XYZ euler in radians.
// Scene nodes, interpolation targets and undo records all use this value type.
type Pose struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3
}

// DefaultPose returns the identity pose (unit scale).
func DefaultPose() Pose {
	return Pose{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}}
}

// SnapConfig holds the snap toggles and step sizes for one session. The half-step flag
// is toggled live by the fine modifier key while a mode is active.
type SnapConfig struct {
	PositionEnabled bool
	PositionStepXZ  float32
	PositionStepY   float32
	RotationEnabled bool
	RotationStep    float32 // radians
	ScaleEnabled    bool
	ScaleStep       float32
	Offset          rl.Vector3 // world-space snap grid offset
	HalfStep        bool
}

// State is the transform being manipulated by the current session. Pure data: the
// position/rotation/scale services mutate it, the interpolator chases TargetPosition,
// nothing here has behavior beyond clamping.
type State struct {
	Position       rl.Vector3 // last committed value
	TargetPosition rl.Vector3 // what interpolation chases

	BaseHeight   float32
	HeightOffset float32

	ManualPositionOffset rl.Vector3

	ManualRotationOffset     rl.Vector3 // radians
	SurfaceAlignmentRotation rl.Vector3 // radians
	SurfaceNormal            rl.Vector3 // last raycast hit normal

	ScaleMultiplier      float32
	NonUniformMultiplier rl.Vector3

	Snap SnapConfig
}

// NewState returns a State at the origin with unit scale and an up-facing surface normal.
func NewState() *State {
	return &State{
		SurfaceNormal:        rl.Vector3{Y: 1},
		ScaleMultiplier:      1,
		NonUniformMultiplier: rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// FinalRotation is always the sum of the alignment base and the manual offset, so
// toggling surface alignment never destroys the user's adjustment.
func (s *State) FinalRotation() rl.Vector3 {
	return rl.Vector3Add(s.SurfaceAlignmentRotation, s.ManualRotationOffset)
}

// EffectiveMultiplier combines the uniform and per-axis multipliers additively around
// 1.0 so step sequences stay exactly reversible, clamped to MinScale.
func (s *State) EffectiveMultiplier(axis Axis) float32 {
	var nu float32
	switch axis {
	case AxisX:
		nu = s.NonUniformMultiplier.X
	case AxisY:
		nu = s.NonUniformMultiplier.Y
	default:
		nu = s.NonUniformMultiplier.Z
	}
	return ClampScale(s.ScaleMultiplier + (nu - 1))
}

// ClampScale clamps a multiplier to the representable minimum.
func ClampScale(m float32) float32 {
	if m < MinScale {
		return MinScale
	}
	return m
}
