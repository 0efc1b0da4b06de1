package engine

import (
	"reflect"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/assets"
	"placement-engine/internal/command"
	"placement-engine/internal/input"
	"placement-engine/internal/modes"
	"placement-engine/internal/numeric"
	"placement-engine/internal/placement"
	"placement-engine/internal/session"
	"placement-engine/internal/settings"
	"placement-engine/internal/smoothing"
)

// Orchestrator is the single per-frame entry point. Advance sequences: settings pull →
// input snapshot → command routing → active mode handler → interpolation → overlay
// refresh. Everything runs synchronously on the caller's frame; a cancel observed here
// exits the mode within the same frame.
type Orchestrator struct {
	svc *Services

	snap   *input.Snapshot
	num    *numeric.Engine
	router *command.Router
	ctrl   *command.ControlState
	sess   *session.Session
	lerp   *smoothing.Interpolator

	strategies *placement.Manager
	plane      *placement.PlaneStrategy
	reg        *assets.Registry

	placeHandler *modes.PlacementHandler
	moveHandler  *modes.TransformHandler
	active       modes.Handler

	clock   func() time.Time
	lastCfg settings.Snapshot
}

// New wires the orchestrator from the service registry, a raw input device and a
// clock. A binding parse failure falls back to defaults with a warning rather than
// failing construction.
func New(svc *Services, dev input.Device, clock func() time.Time) *Orchestrator {
	cfg := svc.Settings()
	bindings, err := input.ParseBindings(cfg.Bindings)
	if err != nil {
		svc.Log.Warnf("settings: %v; using default bindings", err)
		bindings, _ = input.ParseBindings(settings.Default().Bindings)
	}

	num := numeric.New()
	router := command.NewRouter(svc.Log, num)
	router.SetModifierNames(cfg.FineModifier, cfg.LargeModifier, cfg.ReverseModifier)

	plane := placement.NewPlaneStrategy(cfg.PlaneHeight)
	strategies := placement.NewManager(
		placement.NewRaycastStrategy(svc.World.Colliders),
		plane,
	)

	reg, err := assets.Load(cfg.AssetsPath)
	if err != nil {
		svc.Log.Warnf("assets: %v; using builtins", err)
		reg = assets.NewRegistry(nil)
	}

	lerp := smoothing.New(cfg.SmoothingRate)
	lerp.SetEnabled(cfg.SmoothingEnabled)

	o := &Orchestrator{
		svc:          svc,
		snap:         input.NewSnapshot(dev, bindings),
		num:          num,
		router:       router,
		ctrl:         command.NewControlState(),
		sess:         session.NewSession(),
		lerp:         lerp,
		strategies:   strategies,
		plane:        plane,
		reg:          reg,
		placeHandler: modes.NewPlacementHandler(),
		moveHandler:  modes.NewTransformHandler(strategies),
		clock:        clock,
		lastCfg:      cfg,
	}
	return o
}

// Session exposes the live session for tests and the HUD.
func (o *Orchestrator) Session() *session.Session { return o.sess }

// Interpolator exposes the smoothing registry (the draw side reads nothing from it;
// tests do).
func (o *Orchestrator) Interpolator() *smoothing.Interpolator { return o.lerp }

// Advance runs one frame. dt is the frame delta in seconds.
func (o *Orchestrator) Advance(dt float32) {
	now := o.clock()
	cfg := o.svc.Settings()
	o.applySettings(cfg)

	o.snap.Update(now)
	o.handleModeKeys()

	f := o.buildFrame(now, dt)
	if o.active != nil {
		o.active.BeginFrame(f)
	}

	var modal command.ModalHandler
	if o.active != nil {
		modal = o.active
	}
	cmd := o.router.Route(o.snap, o.ctrl, o.steps(cfg), o.sess.State.TargetPosition, modal, now)
	if o.sess.Mode() != session.Idle && o.sess.GrabFocus() {
		// The click/keypress that invoked the mode must not immediately confirm it.
		cmd.Confirm = false
	}

	if o.active != nil {
		o.active.OnFrame(f, cmd)
		if o.sess.Mode() == session.Idle {
			// Handler ended the session this frame (confirm or cancel).
			o.active = nil
			o.ctrl.Reset()
		}
	}

	o.lerp.Advance(dt)
	o.refreshOverlay()
}

// applySettings pushes a changed settings snapshot into every consumer.
func (o *Orchestrator) applySettings(cfg settings.Snapshot) {
	if reflect.DeepEqual(cfg, o.lastCfg) {
		return
	}
	o.lastCfg = cfg
	if bindings, err := input.ParseBindings(cfg.Bindings); err == nil {
		o.snap.Rebind(bindings)
	} else {
		o.svc.Log.Warnf("settings: %v; keeping previous bindings", err)
	}
	o.router.SetModifierNames(cfg.FineModifier, cfg.LargeModifier, cfg.ReverseModifier)
	o.plane.Height = cfg.PlaneHeight
	o.lerp.SetRate(cfg.SmoothingRate)
	o.lerp.SetEnabled(cfg.SmoothingEnabled)
	if o.sess.Mode() != session.Idle {
		o.sess.Configure(cfg)
	}
}

// handleModeKeys reacts to the top-level mode keys. Taps only: a hold of the same key
// is reserved and must not switch modes (nor trigger numeric capture).
func (o *Orchestrator) handleModeKeys() {
	switch {
	case o.snap.Tapped(input.ActionPlaceMode):
		if o.sess.Mode() == session.Placement {
			o.exitActive()
		} else if err := o.enterPlacement(); err != nil {
			o.svc.Log.Warnf("mode: %v", err)
		}
	case o.snap.Tapped(input.ActionTransformMode):
		if o.sess.Mode() == session.Transform {
			o.exitActive()
		} else if err := o.enterTransform(); err != nil {
			o.svc.Log.Warnf("mode: %v", err)
		}
	}
}

func (o *Orchestrator) enterPlacement() error {
	payload := &session.PlacementPayload{
		Assets:     o.reg,
		Strategies: o.strategies,
	}
	if err := o.sess.Begin(session.Placement, payload, o.lastCfg); err != nil {
		return err
	}
	o.ctrl.Reset()
	f := o.buildFrame(o.clock(), 0)
	if err := o.placeHandler.Enter(f); err != nil {
		o.sess.End()
		return err
	}
	o.active = o.placeHandler
	return nil
}

func (o *Orchestrator) enterTransform() error {
	sel := o.svc.World.Selection()
	targets := make([]session.TargetObject, 0, len(sel))
	for _, n := range sel {
		targets = append(targets, session.TargetObject{Node: n, Original: n.Pose()})
	}
	payload := &session.TransformPayload{Targets: targets}
	if err := o.sess.Begin(session.Transform, payload, o.lastCfg); err != nil {
		return err
	}
	o.ctrl.Reset()
	f := o.buildFrame(o.clock(), 0)
	if err := o.moveHandler.Enter(f); err != nil {
		o.sess.End()
		return err
	}
	o.active = o.moveHandler
	return nil
}

func (o *Orchestrator) exitActive() {
	if o.active == nil {
		return
	}
	o.active.Exit(o.buildFrame(o.clock(), 0))
	o.sess.End()
	o.active = nil
	o.ctrl.Reset()
}

func (o *Orchestrator) buildFrame(now time.Time, dt float32) *modes.Frame {
	f := &modes.Frame{
		Session: o.sess,
		Control: o.ctrl,
		World:   o.svc.World,
		Lerp:    o.lerp,
		Log:     o.svc.Log,
		Mouse:   o.snap.MousePosition(),
		Now:     now,
		DT:      dt,
	}
	if o.svc.Camera == nil {
		o.svc.Log.Warnf("frame: no camera provider; skipping ray")
		return f
	}
	origin, dir, ok := o.svc.Camera.Ray(f.Mouse)
	f.RayOrigin, f.RayDir, f.RayOK = origin, dir, ok
	return f
}

func (o *Orchestrator) steps(cfg settings.Snapshot) command.Steps {
	return command.Steps{
		Rotation: cfg.RotationStep * rl.Deg2rad,
		Scale:    cfg.ScaleStep,
		Height:   cfg.PositionStepY,
		Position: cfg.PositionStepXZ,
	}
}

func (o *Orchestrator) refreshOverlay() {
	if o.svc.Overlay == nil {
		return
	}
	st := o.sess.State
	rot := st.FinalRotation()
	s := OverlayState{
		Mode:        o.sess.Mode().String(),
		Modal:       o.ctrl.Active().String(),
		ModalActive: o.ctrl.Explicit(),
		Axes:        o.ctrl.Axes(),
		Position:    st.TargetPosition,
		RotationDeg: rl.Vector3Scale(rot, rl.Rad2deg),
		Scale:       st.ScaleMultiplier,
	}
	if o.num.Capturing() || o.num.ContextSet() {
		s.NumericBuffer = o.num.Buffer()
		s.NumericTarget = o.num.Target().String()
	}
	if p := o.sess.PlacementPayload(); p != nil {
		if strat := p.Strategies.Active(); strat != nil {
			s.Strategy = strat.Name()
		}
		s.Asset = p.Assets.At(p.AssetIndex).Name
		s.Hints = []string{"tab: exit", "[/]: asset", "t: strategy", "g/r/l: modal", "x/y/z: axis"}
	} else if o.sess.Mode() == session.Transform {
		s.Hints = []string{"m: exit", "g/r/l: modal", "x/y/z: axis", "esc: cancel"}
	} else {
		s.Hints = []string{"tab: place", "m: transform"}
	}
	o.svc.Overlay.Refresh(s)
}
