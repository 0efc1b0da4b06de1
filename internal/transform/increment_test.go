package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepNoModifiers(t *testing.T) {
	assert.InDelta(t, 1.0, Step(1, Modifiers{}), 1e-6)
}

func TestStepFine(t *testing.T) {
	assert.InDelta(t, 0.1, Step(1, Modifiers{Fine: true}), 1e-6)
}

func TestStepLarge(t *testing.T) {
	assert.InDelta(t, 5.0, Step(1, Modifiers{Large: true}), 1e-6)
}

func TestStepReverse(t *testing.T) {
	assert.InDelta(t, -1.0, Step(1, Modifiers{Reverse: true}), 1e-6)
}

func TestStepCombined(t *testing.T) {
	// Fine and Large compose; Reverse flips the composed step.
	got := Step(2, Modifiers{Fine: true, Large: true, Reverse: true})
	assert.InDelta(t, -1.0, got, 1e-6)
}
