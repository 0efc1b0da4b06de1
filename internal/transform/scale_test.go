package transform

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestScaleAdditiveReversible(t *testing.T) {
	var svc ScaleService
	original := rl.Vector3{X: 2, Y: 0.5, Z: 1.25}
	for _, d := range []float32{0.1, 0.25, 1, 3.7} {
		st := NewState()
		before := svc.TargetFor(st, original)
		svc.AddStep(st, d)
		svc.AddStep(st, -d)
		after := svc.TargetFor(st, original)
		assert.InDelta(t, before.X, after.X, 1e-5, "d=%v", d)
		assert.InDelta(t, before.Y, after.Y, 1e-5, "d=%v", d)
		assert.InDelta(t, before.Z, after.Z, 1e-5, "d=%v", d)
	}
}

func TestScaleClampPositiveMinimum(t *testing.T) {
	var svc ScaleService
	st := NewState()
	svc.AddStep(st, -100)
	assert.InDelta(t, MinScale, st.ScaleMultiplier, 1e-6)

	svc.SetUniform(st, -5)
	assert.InDelta(t, MinScale, st.ScaleMultiplier, 1e-6)

	svc.AddAxisStep(st, AxisY, -100)
	assert.InDelta(t, MinScale, st.NonUniformMultiplier.Y, 1e-6)
}

func TestScaleTargetAdditiveAroundOriginal(t *testing.T) {
	var svc ScaleService
	st := NewState()
	svc.AddStep(st, 0.5) // multiplier 1.5
	got := svc.TargetFor(st, rl.Vector3{X: 2, Y: 2, Z: 2})
	assert.InDelta(t, 2.5, got.X, 1e-6)
	assert.InDelta(t, 2.5, got.Y, 1e-6)
	assert.InDelta(t, 2.5, got.Z, 1e-6)
}

func TestPreviewScaleMultiplicative(t *testing.T) {
	var svc ScaleService
	st := NewState()
	svc.AddStep(st, 0.5)
	got := svc.PreviewScale(st, rl.Vector3{X: 2, Y: 2, Z: 2})
	assert.InDelta(t, 3.0, got.X, 1e-6)
}

func TestNonUniformCombines(t *testing.T) {
	var svc ScaleService
	st := NewState()
	svc.AddAxisStep(st, AxisX, 0.25)
	svc.AddStep(st, 0.5)
	assert.InDelta(t, 1.75, st.EffectiveMultiplier(AxisX), 1e-6)
	assert.InDelta(t, 1.5, st.EffectiveMultiplier(AxisY), 1e-6)
}
