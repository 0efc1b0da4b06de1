package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CameraProvider yields a world-space ray for a viewport coordinate. The orchestrator
// treats a nil provider or a false ok as invalid input for the frame.
type CameraProvider interface {
	Ray(viewport rl.Vector2) (origin, direction rl.Vector3, ok bool)
}

// Camera wraps a raylib perspective camera: position (10,10,10) looking at the
// origin, Y up, 45 degree fovy.
type Camera struct {
	Cam rl.Camera3D
}

// NewCamera returns the default editor camera.
func NewCamera() *Camera {
	c := &Camera{}
	c.Cam.Position = rl.NewVector3(10, 10, 10)
	c.Cam.Target = rl.NewVector3(0, 0, 0)
	c.Cam.Up = rl.NewVector3(0, 1, 0)
	c.Cam.Fovy = 45
	c.Cam.Projection = rl.CameraPerspective
	return c
}

// Update runs raylib free-camera controls for the frame.
func (c *Camera) Update() {
	rl.UpdateCamera(&c.Cam, rl.CameraFree)
}

// Ray unprojects a viewport coordinate through the camera.
func (c *Camera) Ray(viewport rl.Vector2) (rl.Vector3, rl.Vector3, bool) {
	ray := rl.GetScreenToWorldRay(viewport, c.Cam)
	return ray.Position, rl.Vector3Normalize(ray.Direction), true
}
