// Package modes implements the Placement and Transform mode handlers: the per-frame
// consumers of routed commands that mutate the session's transform state.
package modes

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/command"
	"placement-engine/internal/logger"
	"placement-engine/internal/scene"
	"placement-engine/internal/session"
	"placement-engine/internal/smoothing"
)

// Frame carries the per-frame collaborators a handler needs. The orchestrator builds
// one per frame and hands the same value to the router dispatch and OnFrame.
type Frame struct {
	Session *session.Session
	Control *command.ControlState
	World   *scene.World
	Lerp    *smoothing.Interpolator
	Log     *logger.Logger

	Mouse     rl.Vector2
	RayOrigin rl.Vector3
	RayDir    rl.Vector3
	RayOK     bool

	Now time.Time
	DT  float32
}

// Handler is one mode's lifecycle: Enter once, OnFrame while active, Exit once. The
// embedded ModalHandler methods are invoked by the router mid-frame for the active
// modal.
type Handler interface {
	command.ModalHandler
	// BeginFrame runs before router dispatch so modal callbacks see mouse state.
	BeginFrame(f *Frame)
	Enter(f *Frame) error
	OnFrame(f *Frame, cmd command.Command)
	Exit(f *Frame)
}

// mouseRotatePerPixel and mouseScalePerPixel map horizontal mouse travel to modal
// rotation/scale deltas.
const (
	mouseRotatePerPixel = 0.01 // radians
	mouseScalePerPixel  = 0.005
)
