package command

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"placement-engine/internal/transform"
)

func TestControlDefaultsToImplicitPosition(t *testing.T) {
	c := NewControlState()
	assert.Equal(t, ModalPosition, c.Active())
	assert.False(t, c.Explicit())
}

func TestSelectModalClearsAxes(t *testing.T) {
	c := NewControlState()
	c.ToggleAxis(transform.AxisX, rl.Vector3{})
	c.SelectModal(ModalRotation)
	assert.Equal(t, ModalRotation, c.Active())
	assert.True(t, c.Explicit())
	assert.Equal(t, [3]bool{}, c.Axes())
	_, ok := c.ConstraintOrigin()
	assert.False(t, ok)
}

func TestToggleAxisIndependence(t *testing.T) {
	c := NewControlState()
	c.ToggleAxis(transform.AxisX, rl.Vector3{})
	c.ToggleAxis(transform.AxisY, rl.Vector3{})
	c.ToggleAxis(transform.AxisX, rl.Vector3{})
	// X toggled off again: only Y remains
	assert.Equal(t, [3]bool{false, true, false}, c.Axes())
}

func TestToggleAxisCapturesOriginOnFirst(t *testing.T) {
	c := NewControlState()
	first := rl.Vector3{X: 1, Y: 2, Z: 3}
	c.ToggleAxis(transform.AxisZ, first)
	origin, ok := c.ConstraintOrigin()
	assert.True(t, ok)
	assert.Equal(t, first, origin)

	// A second axis never moves the origin.
	c.ToggleAxis(transform.AxisX, rl.Vector3{X: 9})
	origin, ok = c.ConstraintOrigin()
	assert.True(t, ok)
	assert.Equal(t, first, origin)
}

func TestToggleAxisAllOffClearsOrigin(t *testing.T) {
	c := NewControlState()
	c.ToggleAxis(transform.AxisY, rl.Vector3{Y: 5})
	c.ToggleAxis(transform.AxisY, rl.Vector3{Y: 7})
	_, ok := c.ConstraintOrigin()
	assert.False(t, ok)

	// Re-enabling captures a fresh origin.
	fresh := rl.Vector3{Y: 9}
	c.ToggleAxis(transform.AxisY, fresh)
	origin, ok := c.ConstraintOrigin()
	assert.True(t, ok)
	assert.Equal(t, fresh, origin)
}

func TestConstrainedAxisSingleOnly(t *testing.T) {
	c := NewControlState()
	_, ok := c.ConstrainedAxis()
	assert.False(t, ok)

	c.ToggleAxis(transform.AxisZ, rl.Vector3{})
	axis, ok := c.ConstrainedAxis()
	assert.True(t, ok)
	assert.Equal(t, transform.AxisZ, axis)

	c.ToggleAxis(transform.AxisX, rl.Vector3{})
	_, ok = c.ConstrainedAxis()
	assert.False(t, ok)
}

func TestDeactivateRestoresImplicitPosition(t *testing.T) {
	c := NewControlState()
	c.SelectModal(ModalScale)
	c.ToggleAxis(transform.AxisX, rl.Vector3{})
	c.Deactivate()
	assert.Equal(t, ModalPosition, c.Active())
	assert.False(t, c.Explicit())
	assert.Equal(t, [3]bool{}, c.Axes())
}
