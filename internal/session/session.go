package session

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/assets"
	"placement-engine/internal/placement"
	"placement-engine/internal/scene"
	"placement-engine/internal/settings"
	"placement-engine/internal/transform"
)

// Payload is the mode-specific data a session carries. Tagged union: exactly
// PlacementPayload or TransformPayload, never a loose dictionary.
type Payload interface {
	isPayload()
}

// PlacementPayload is the working data of an active placement session.
type PlacementPayload struct {
	Preview    *scene.Node
	Assets     *assets.Registry
	AssetIndex int
	Strategies *placement.Manager
	// PlacedCount tracks place-and-continue commits within this session.
	PlacedCount int
}

func (*PlacementPayload) isPayload() {}

// TargetObject is one selected object under transform, with the transform it had when
// the session began so cancel can revert and scale can stay additive.
type TargetObject struct {
	Node     *scene.Node
	Original transform.Pose
}

// TransformPayload is the working data of an active transform session.
type TransformPayload struct {
	Targets  []TargetObject
	Centroid rl.Vector3
}

func (*TransformPayload) isPayload() {}

// focusGrabFrames: frames after session start during which stray clicks are swallowed
// (the click that invoked the mode must not immediately confirm it).
const focusGrabFrames = 2

// Session is the single mutable container for the current operation: one transform
// state, the active mode, its payload and a settings snapshot. Exactly one session
// exists; beginning a new mode resets it.
type Session struct {
	machine  ModeMachine
	State    *transform.State
	Settings settings.Snapshot
	payload  Payload

	focusGrab  int
	OnComplete func(mode Mode)
}

// NewSession returns an idle session with a fresh state.
func NewSession() *Session {
	return &Session{State: transform.NewState()}
}

// Mode returns the current top-level mode.
func (s *Session) Mode() Mode { return s.machine.Mode() }

// Begin enters a working mode with its payload. The transform state is rebuilt and
// configured from the settings snapshot; the guard error passes through unchanged.
func (s *Session) Begin(mode Mode, payload Payload, cfg settings.Snapshot) error {
	if err := s.machine.Enter(mode); err != nil {
		return err
	}
	s.State = transform.NewState()
	s.payload = payload
	s.focusGrab = focusGrabFrames
	s.Configure(cfg)
	return nil
}

// End returns to Idle, dropping the payload and state. Completion callback fires with
// the mode that just ended.
func (s *Session) End() {
	ended := s.machine.Mode()
	if ended == Idle {
		return
	}
	_ = s.machine.Enter(Idle)
	s.payload = nil
	s.State = transform.NewState()
	if s.OnComplete != nil {
		s.OnComplete(ended)
	}
}

// Configure refreshes the snap configuration from a settings snapshot. Called on
// Begin and whenever settings change while a mode is active.
func (s *Session) Configure(cfg settings.Snapshot) {
	s.Settings = cfg.Clone()
	half := s.State.Snap.HalfStep
	s.State.Snap = transform.SnapConfig{
		PositionEnabled: cfg.SnapPosition,
		PositionStepXZ:  cfg.PositionStepXZ,
		PositionStepY:   cfg.PositionStepY,
		RotationEnabled: cfg.SnapRotation,
		RotationStep:    cfg.RotationStep * rl.Deg2rad,
		ScaleEnabled:    cfg.SnapScale,
		ScaleStep:       cfg.ScaleStep,
		Offset:          rl.Vector3{X: cfg.SnapOffset[0], Y: cfg.SnapOffset[1], Z: cfg.SnapOffset[2]},
		HalfStep:        half,
	}
}

// Payload returns the mode-specific payload, nil when idle.
func (s *Session) Payload() Payload { return s.payload }

// PlacementPayload returns the payload as placement data, or nil.
func (s *Session) PlacementPayload() *PlacementPayload {
	p, _ := s.payload.(*PlacementPayload)
	return p
}

// TransformPayload returns the payload as transform data, or nil.
func (s *Session) TransformPayload() *TransformPayload {
	p, _ := s.payload.(*TransformPayload)
	return p
}

// GrabFocus reports whether the session is still swallowing initial clicks, and
// counts the grab down each frame it is queried.
func (s *Session) GrabFocus() bool {
	if s.focusGrab > 0 {
		s.focusGrab--
		return true
	}
	return false
}
