package transform

import (
	"github.com/chewxy/math32"
)

// SnapValue rounds v to the nearest multiple of step relative to offset. The result is
// always within step/2 of v and congruent to offset modulo step. A non-positive step
// disables snapping for that call.
func SnapValue(v, step, offset float32) float32 {
	if step <= 0 {
		return v
	}
	return math32.Round((v-offset)/step)*step + offset
}

// EffectiveStep halves step when the half-step flag or the fine modifier is in effect.
func EffectiveStep(step float32, half bool) float32 {
	if half {
		return step * 0.5
	}
	return step
}
