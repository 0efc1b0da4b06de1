package transform

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/placement"
)

// heightHysteresis: while Y is locked, base height is only re-derived once the
// horizontal position has moved farther than this, so pure vertical/rotation
// adjustments don't jitter the base height.
const heightHysteresis = 0.05

// PositionService resolves placement results into the state's target position.
// Stateless: the same service works for Placement and Transform sessions.
type PositionService struct{}

// Apply folds a strategy result into st: update the surface normal and base height
// (subject to hysteresis while yLocked), compose the vertical from base + offset,
// grid-snap, then add the accumulated manual offset after snapping.
// A miss holds the last good position and changes nothing.
func (PositionService) Apply(st *State, res placement.Result, yLocked, fine bool) {
	if st == nil || !res.Hit {
		return
	}
	st.SurfaceNormal = res.Normal

	dx := res.Point.X - st.TargetPosition.X
	dz := res.Point.Z - st.TargetPosition.Z
	moved := math32.Sqrt(dx*dx+dz*dz) > heightHysteresis
	if !yLocked || moved {
		st.BaseHeight = res.Point.Y
	}

	p := rl.Vector3{
		X: res.Point.X,
		Y: st.BaseHeight + st.HeightOffset,
		Z: res.Point.Z,
	}
	if st.Snap.PositionEnabled {
		half := st.Snap.HalfStep || fine
		stepXZ := EffectiveStep(st.Snap.PositionStepXZ, half)
		stepY := EffectiveStep(st.Snap.PositionStepY, half)
		p.X = SnapValue(p.X, stepXZ, st.Snap.Offset.X)
		p.Z = SnapValue(p.Z, stepXZ, st.Snap.Offset.Z)
		p.Y = SnapValue(p.Y, stepY, st.Snap.Offset.Y)
	}
	st.TargetPosition = rl.Vector3Add(p, st.ManualPositionOffset)
}

// Nudge adds a directional-move step to the manual offset on one axis.
func (PositionService) Nudge(st *State, axis Axis, delta float32) {
	if st == nil {
		return
	}
	switch axis {
	case AxisX:
		st.ManualPositionOffset.X += delta
	case AxisY:
		st.ManualPositionOffset.Y += delta
	case AxisZ:
		st.ManualPositionOffset.Z += delta
	}
}

// AdjustHeight moves the height offset; the next Apply folds it into the vertical.
func (PositionService) AdjustHeight(st *State, delta float32) {
	if st == nil {
		return
	}
	st.HeightOffset += delta
}
