// Package smoothing blends tracked objects' live transforms toward their targets so
// snapped movement reads as motion instead of teleporting.
package smoothing

import (
	"github.com/chewxy/math32"
	"github.com/google/uuid"
	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/transform"
)

// settleEpsilon: once the remaining delta on position, rotation and scale all drop
// below this, the object snaps exactly to target and stops consuming per-frame work.
const settleEpsilon = 1e-3

// Poseable is anything whose pose the interpolator may read and write. Scene nodes
// implement it.
type Poseable interface {
	Pose() transform.Pose
	SetPose(transform.Pose)
}

type entry struct {
	obj     Poseable
	target  transform.Pose
	settled bool
}

// Interpolator is a registry of tracked objects and their target transforms. Each
// frame, position and scale are exponentially lerped and rotation angle-interpolated
// (shortest path per axis) toward the target.
type Interpolator struct {
	enabled bool
	rate    float32
	tracked map[uuid.UUID]*entry
}

// New returns an enabled interpolator with the given rate (higher = snappier).
func New(rate float32) *Interpolator {
	return &Interpolator{
		enabled: true,
		rate:    rate,
		tracked: make(map[uuid.UUID]*entry),
	}
}

// SetRate changes the blend rate.
func (in *Interpolator) SetRate(rate float32) { in.rate = rate }

// SetEnabled toggles smoothing globally. Disabling immediately force-snaps every
// tracked object to its current target.
func (in *Interpolator) SetEnabled(enabled bool) {
	in.enabled = enabled
	if enabled {
		return
	}
	for _, e := range in.tracked {
		e.obj.SetPose(e.target)
		e.settled = true
	}
}

// Track registers an object (or updates its target if already tracked).
func (in *Interpolator) Track(id uuid.UUID, obj Poseable, target transform.Pose) {
	if e, ok := in.tracked[id]; ok {
		e.obj = obj
		e.target = target
		e.settled = false
		return
	}
	in.tracked[id] = &entry{obj: obj, target: target}
}

// SetTarget updates a tracked object's target, waking it if it had settled. Unknown
// ids are ignored.
func (in *Interpolator) SetTarget(id uuid.UUID, target transform.Pose) {
	e, ok := in.tracked[id]
	if !ok {
		return
	}
	e.target = target
	e.settled = false
}

// Untrack removes an object from the registry without touching its pose.
func (in *Interpolator) Untrack(id uuid.UUID) {
	delete(in.tracked, id)
}

// Clear removes everything without touching poses.
func (in *Interpolator) Clear() {
	in.tracked = make(map[uuid.UUID]*entry)
}

// ApplyImmediately snaps one object straight to its target — used for final placement,
// which must never exhibit a visible slide.
func (in *Interpolator) ApplyImmediately(id uuid.UUID) {
	e, ok := in.tracked[id]
	if !ok {
		return
	}
	e.obj.SetPose(e.target)
	e.settled = true
}

// Advance moves every unsettled object toward its target. dt is the frame delta in
// seconds. With smoothing disabled objects are written straight to target.
func (in *Interpolator) Advance(dt float32) {
	for _, e := range in.tracked {
		if e.settled {
			continue
		}
		if !in.enabled {
			e.obj.SetPose(e.target)
			e.settled = true
			continue
		}
		t := 1 - math32.Exp(-in.rate*dt)
		cur := e.obj.Pose()
		next := transform.Pose{
			Position: lerpVec(cur.Position, e.target.Position, t),
			Rotation: lerpAngles(cur.Rotation, e.target.Rotation, t),
			Scale:    lerpVec(cur.Scale, e.target.Scale, t),
		}
		if poseClose(next, e.target) {
			next = e.target
			e.settled = true
		}
		e.obj.SetPose(next)
	}
}

func lerpVec(a, b rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

func lerpAngles(a, b rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3{
		X: a.X + angleDelta(a.X, b.X)*t,
		Y: a.Y + angleDelta(a.Y, b.Y)*t,
		Z: a.Z + angleDelta(a.Z, b.Z)*t,
	}
}

// angleDelta returns the shortest signed arc from a to b in radians.
func angleDelta(a, b float32) float32 {
	d := math32.Mod(b-a, 2*math32.Pi)
	if d > math32.Pi {
		d -= 2 * math32.Pi
	}
	if d < -math32.Pi {
		d += 2 * math32.Pi
	}
	return d
}

func poseClose(a, b transform.Pose) bool {
	return vecClose(a.Position, b.Position) &&
		anglesClose(a.Rotation, b.Rotation) &&
		vecClose(a.Scale, b.Scale)
}

func vecClose(a, b rl.Vector3) bool {
	return math32.Abs(a.X-b.X) < settleEpsilon &&
		math32.Abs(a.Y-b.Y) < settleEpsilon &&
		math32.Abs(a.Z-b.Z) < settleEpsilon
}

func anglesClose(a, b rl.Vector3) bool {
	return math32.Abs(angleDelta(a.X, b.X)) < settleEpsilon &&
		math32.Abs(angleDelta(a.Y, b.Y)) < settleEpsilon &&
		math32.Abs(angleDelta(a.Z, b.Z)) < settleEpsilon
}
