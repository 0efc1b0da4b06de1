package placement

import (
	"github.com/google/uuid"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collider is one axis-aligned collision box in the scene, tagged with the handle of
// the node that owns it so exclusion sets can filter it out.
type Collider struct {
	ID  uuid.UUID
	Box rl.BoundingBox
}

// RaycastStrategy casts against the scene's collision geometry. The collider list is
// pulled through a callback each query so the strategy never caches scene state.
type RaycastStrategy struct {
	Source func() []Collider
}

// NewRaycastStrategy returns a strategy reading colliders from source on every query.
func NewRaycastStrategy(source func() []Collider) *RaycastStrategy {
	return &RaycastStrategy{Source: source}
}

func (s *RaycastStrategy) Name() string { return "raycast" }

// CalculatePosition returns the closest collider hit along the ray, skipping excluded
// nodes. Misses everything: sentinel miss, caller holds the last good position.
func (s *RaycastStrategy) CalculatePosition(origin, direction rl.Vector3, exclude ExclusionSet) Result {
	if s.Source == nil {
		return Miss()
	}
	best := Miss()
	for _, c := range s.Source() {
		if _, skip := exclude[c.ID]; skip {
			continue
		}
		dist, normal, ok := rayBoxIntersect(origin, direction, c.Box)
		if !ok {
			continue
		}
		if !best.Hit || dist < best.Distance {
			best = Result{
				Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, dist)),
				Normal:   normal,
				Hit:      true,
				Distance: dist,
			}
		}
	}
	return best
}

// rayBoxIntersect is a slab test against an AABB. Returns the entry distance and the
// outward normal of the face crossed at entry. Rays starting inside the box miss (the
// preview should never be placed inside geometry the camera is already in).
func rayBoxIntersect(origin, dir rl.Vector3, box rl.BoundingBox) (float32, rl.Vector3, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)
	axis := -1 // axis of the entry face

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}
	if tmin <= 0 || axis < 0 {
		return 0, rl.Vector3{}, false
	}

	var n rl.Vector3
	sign := float32(1)
	if d[axis] > 0 {
		sign = -1
	}
	switch axis {
	case 0:
		n = rl.Vector3{X: sign}
	case 1:
		n = rl.Vector3{Y: sign}
	case 2:
		n = rl.Vector3{Z: sign}
	}
	return tmin, n, true
}
