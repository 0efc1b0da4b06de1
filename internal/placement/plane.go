package placement

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// parallelEpsilon: rays with |dir.Y| below this are treated as parallel to the plane.
const parallelEpsilon = 1e-6

// PlaneStrategy intersects the ray with a fixed horizontal plane at Height. It always
// hits unless the ray is parallel to the plane or points away from it.
type PlaneStrategy struct {
	Height float32
}

// NewPlaneStrategy returns a plane strategy at the given world height.
func NewPlaneStrategy(height float32) *PlaneStrategy {
	return &PlaneStrategy{Height: height}
}

func (s *PlaneStrategy) Name() string { return "plane" }

// CalculatePosition ignores the exclusion set: the plane is not scene geometry.
func (s *PlaneStrategy) CalculatePosition(origin, direction rl.Vector3, _ ExclusionSet) Result {
	if math32.Abs(direction.Y) < parallelEpsilon {
		return Miss()
	}
	t := (s.Height - origin.Y) / direction.Y
	if t <= 0 {
		return Miss()
	}
	return Result{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   rl.Vector3{Y: 1},
		Hit:      true,
		Distance: t,
	}
}
