package transform

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ScaleService adjusts the uniform and per-axis multipliers. Final scale applied to an
// existing object's original scale is an additive offset around 1.0 per axis, so
// +step then -step is exactly reversible; a fresh preview scales multiplicatively.
type ScaleService struct{}

// AddStep moves the uniform multiplier by delta, clamped to the representable minimum.
func (ScaleService) AddStep(st *State, delta float32) {
	if st == nil {
		return
	}
	st.ScaleMultiplier = ClampScale(st.ScaleMultiplier + delta)
}

// SetUniform replaces the uniform multiplier (numeric absolute entry), clamped.
func (ScaleService) SetUniform(st *State, value float32) {
	if st == nil {
		return
	}
	st.ScaleMultiplier = ClampScale(value)
}

// AddAxisStep moves one axis of the non-uniform multiplier by delta, clamped.
func (ScaleService) AddAxisStep(st *State, axis Axis, delta float32) {
	if st == nil {
		return
	}
	switch axis {
	case AxisX:
		st.NonUniformMultiplier.X = ClampScale(st.NonUniformMultiplier.X + delta)
	case AxisY:
		st.NonUniformMultiplier.Y = ClampScale(st.NonUniformMultiplier.Y + delta)
	default:
		st.NonUniformMultiplier.Z = ClampScale(st.NonUniformMultiplier.Z + delta)
	}
}

// TargetFor returns the scale an existing object with the given original scale should
// reach: original + (effective multiplier - 1) per axis.
func (ScaleService) TargetFor(st *State, original rl.Vector3) rl.Vector3 {
	if st == nil {
		return original
	}
	return rl.Vector3{
		X: original.X + (st.EffectiveMultiplier(AxisX) - 1),
		Y: original.Y + (st.EffectiveMultiplier(AxisY) - 1),
		Z: original.Z + (st.EffectiveMultiplier(AxisZ) - 1),
	}
}

// PreviewScale returns the scale for a freshly instantiated preview: direct
// multiplicative against the asset's base scale.
func (ScaleService) PreviewScale(st *State, base rl.Vector3) rl.Vector3 {
	if st == nil {
		return base
	}
	return rl.Vector3{
		X: base.X * st.EffectiveMultiplier(AxisX),
		Y: base.Y * st.EffectiveMultiplier(AxisY),
		Z: base.Z * st.EffectiveMultiplier(AxisZ),
	}
}
