package placement

import (
	"testing"

	"github.com/google/uuid"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) rl.BoundingBox {
	return rl.BoundingBox{
		Min: rl.Vector3{X: minX, Y: minY, Z: minZ},
		Max: rl.Vector3{X: maxX, Y: maxY, Z: maxZ},
	}
}

func TestRaycastHitsTopFace(t *testing.T) {
	ground := Collider{ID: uuid.New(), Box: box(-10, -1, -10, 10, 0, 10)}
	s := NewRaycastStrategy(func() []Collider { return []Collider{ground} })

	res := s.CalculatePosition(rl.Vector3{X: 2.3, Y: 5, Z: 4.7}, rl.Vector3{Y: -1}, nil)
	require.True(t, res.Hit)
	assert.InDelta(t, 2.3, res.Point.X, 1e-5)
	assert.InDelta(t, 0, res.Point.Y, 1e-5)
	assert.InDelta(t, 4.7, res.Point.Z, 1e-5)
	assert.InDelta(t, 1, res.Normal.Y, 1e-5)
}

func TestRaycastClosestHitWins(t *testing.T) {
	far := Collider{ID: uuid.New(), Box: box(-1, -1, -1, 1, 0, 1)}
	near := Collider{ID: uuid.New(), Box: box(-1, 2, -1, 1, 3, 1)}
	s := NewRaycastStrategy(func() []Collider { return []Collider{far, near} })

	res := s.CalculatePosition(rl.Vector3{Y: 10}, rl.Vector3{Y: -1}, nil)
	require.True(t, res.Hit)
	assert.InDelta(t, 3, res.Point.Y, 1e-5)
}

func TestRaycastExclusionSkipsNode(t *testing.T) {
	ground := Collider{ID: uuid.New(), Box: box(-10, -1, -10, 10, 0, 10)}
	preview := Collider{ID: uuid.New(), Box: box(-1, 2, -1, 1, 3, 1)}
	s := NewRaycastStrategy(func() []Collider { return []Collider{ground, preview} })

	exclude := ExclusionSet{preview.ID: {}}
	res := s.CalculatePosition(rl.Vector3{Y: 10}, rl.Vector3{Y: -1}, exclude)
	require.True(t, res.Hit)
	// the excluded preview sits in front of the ground but must be skipped
	assert.InDelta(t, 0, res.Point.Y, 1e-5)
}

func TestRaycastMissesEverything(t *testing.T) {
	ground := Collider{ID: uuid.New(), Box: box(-1, -1, -1, 1, 0, 1)}
	s := NewRaycastStrategy(func() []Collider { return []Collider{ground} })

	res := s.CalculatePosition(rl.Vector3{X: 50, Y: 10}, rl.Vector3{Y: -1}, nil)
	assert.False(t, res.Hit)
}

func TestRaycastFromInsideMisses(t *testing.T) {
	c := Collider{ID: uuid.New(), Box: box(-1, -1, -1, 1, 1, 1)}
	s := NewRaycastStrategy(func() []Collider { return []Collider{c} })

	res := s.CalculatePosition(rl.Vector3{}, rl.Vector3{Y: -1}, nil)
	assert.False(t, res.Hit)
}

func TestRaycastSideFaceNormal(t *testing.T) {
	c := Collider{ID: uuid.New(), Box: box(-1, -1, -1, 1, 1, 1)}
	s := NewRaycastStrategy(func() []Collider { return []Collider{c} })

	res := s.CalculatePosition(rl.Vector3{X: -5}, rl.Vector3{X: 1}, nil)
	require.True(t, res.Hit)
	assert.InDelta(t, -1, res.Normal.X, 1e-5)
	assert.InDelta(t, -1, res.Point.X, 1e-5)
}

func TestPlaneHit(t *testing.T) {
	s := NewPlaneStrategy(2)
	res := s.CalculatePosition(rl.Vector3{X: 1, Y: 10, Z: 1}, rl.Vector3{Y: -1}, nil)
	require.True(t, res.Hit)
	assert.InDelta(t, 2, res.Point.Y, 1e-5)
	assert.InDelta(t, 1, res.Normal.Y, 1e-5)
}

func TestPlaneParallelRayMisses(t *testing.T) {
	s := NewPlaneStrategy(0)
	res := s.CalculatePosition(rl.Vector3{Y: 5}, rl.Vector3{X: 1}, nil)
	assert.False(t, res.Hit)
}

func TestPlaneBehindRayMisses(t *testing.T) {
	s := NewPlaneStrategy(0)
	res := s.CalculatePosition(rl.Vector3{Y: 5}, rl.Vector3{Y: 1}, nil)
	assert.False(t, res.Hit)
}

func TestManagerCycleWraps(t *testing.T) {
	ray := NewRaycastStrategy(nil)
	plane := NewPlaneStrategy(0)
	m := NewManager(ray, plane)

	assert.Equal(t, "raycast", m.Active().Name())
	m.Cycle()
	assert.Equal(t, "plane", m.Active().Name())
	m.Cycle()
	assert.Equal(t, "raycast", m.Active().Name())
}

func TestManagerEmpty(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.Active())
	m.Cycle() // must not panic
}
