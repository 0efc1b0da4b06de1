package transform

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// alignEpsilon bounds the degenerate axis/angle cases: a normal this close to the up
// axis counts as already aligned, this close to its negation as exactly opposite.
const alignEpsilon = 1e-5

// RotationService accumulates manual rotation independently from the surface-alignment
// base; the final rotation is always the sum of the two (State.FinalRotation).
type RotationService struct{}

// AddManual adds delta radians of manual rotation on one axis, optionally snapping the
// resulting offset to the configured rotation step.
func (RotationService) AddManual(st *State, axis Axis, delta float32) {
	if st == nil {
		return
	}
	var v *float32
	switch axis {
	case AxisX:
		v = &st.ManualRotationOffset.X
	case AxisY:
		v = &st.ManualRotationOffset.Y
	default:
		v = &st.ManualRotationOffset.Z
	}
	*v += delta
	if st.Snap.RotationEnabled {
		step := EffectiveStep(st.Snap.RotationStep, st.Snap.HalfStep)
		*v = SnapValue(*v, step, 0)
	}
}

// SetManual replaces the manual offset on one axis outright (numeric absolute entry).
func (RotationService) SetManual(st *State, axis Axis, value float32) {
	if st == nil {
		return
	}
	switch axis {
	case AxisX:
		st.ManualRotationOffset.X = value
	case AxisY:
		st.ManualRotationOffset.Y = value
	default:
		st.ManualRotationOffset.Z = value
	}
}

// SetSurfaceAlignment derives the alignment base from the last hit normal, or clears
// it. The manual offset is never touched here.
func (RotationService) SetSurfaceAlignment(st *State, enabled bool) {
	if st == nil {
		return
	}
	if !enabled {
		st.SurfaceAlignmentRotation = rl.Vector3{}
		return
	}
	st.SurfaceAlignmentRotation = AlignmentFromNormal(st.SurfaceNormal)
}

// AlignmentFromNormal rotates the up axis onto the normal via axis/angle and returns
// the result as XYZ euler radians. Degenerate cases are special-cased rather than
// erroring: near-up is "already aligned", near-down is a half-turn around X.
func AlignmentFromNormal(normal rl.Vector3) rl.Vector3 {
	if rl.Vector3Length(normal) < alignEpsilon {
		return rl.Vector3{}
	}
	up := rl.Vector3{Y: 1}
	n := rl.Vector3Normalize(normal)
	d := rl.Vector3DotProduct(up, n)
	if d >= 1-alignEpsilon {
		return rl.Vector3{}
	}
	if d <= -1+alignEpsilon {
		return rl.Vector3{X: math32.Pi}
	}
	axis := rl.Vector3Normalize(rl.Vector3CrossProduct(up, n))
	angle := math32.Acos(clampf(d, -1, 1))
	q := rl.QuaternionFromAxisAngle(axis, angle)
	return rl.QuaternionToEuler(q)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
