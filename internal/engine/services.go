package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/logger"
	"placement-engine/internal/scene"
	"placement-engine/internal/settings"
)

// Services is the explicit dependency registry handed by reference to the
// orchestrator and through it to the mode handlers. No module-level mutable state:
// everything cross-cutting lives here.
type Services struct {
	Camera scene.CameraProvider
	World  *scene.World
	// Settings is the read-only settings provider, polled at the start of each frame.
	Settings func() settings.Snapshot
	Overlay  OverlaySink
	Log      *logger.Logger
}

// OverlayState is the display-only data pushed to the HUD every frame. The core
// never reads anything back from the overlay.
type OverlayState struct {
	Mode        string
	Modal       string
	ModalActive bool
	Axes        [3]bool

	Position    rl.Vector3
	RotationDeg rl.Vector3
	Scale       float32

	NumericBuffer string
	NumericTarget string

	Strategy string
	Asset    string
	Hints    []string
}

// OverlaySink receives the per-frame overlay state.
type OverlaySink interface {
	Refresh(s OverlayState)
}
