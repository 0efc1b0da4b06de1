package modes

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-engine/internal/assets"
	"placement-engine/internal/command"
	"placement-engine/internal/logger"
	"placement-engine/internal/numeric"
	"placement-engine/internal/placement"
	"placement-engine/internal/scene"
	"placement-engine/internal/session"
	"placement-engine/internal/settings"
	"placement-engine/internal/smoothing"
	"placement-engine/internal/transform"
)

type placementEnv struct {
	frame   *Frame
	handler *PlacementHandler
	world   *scene.World
	lerp    *smoothing.Interpolator
	sess    *session.Session
	payload *session.PlacementPayload
}

// newPlacementEnv builds an active placement session over a 40x40 ground slab whose
// top face is at Y=0, with the camera ray pointing straight down at (2.3, 4.7).
func newPlacementEnv(t *testing.T) *placementEnv {
	t.Helper()
	log := &logger.Logger{}
	world := scene.NewWorld(log)

	ground := scene.NewNode("ground")
	ground.Size = rl.Vector3{X: 40, Y: 0.5, Z: 40}
	pose := ground.Pose()
	pose.Position.Y = -0.25
	ground.SetPose(pose)
	world.Attach(ground)

	lerp := smoothing.New(18)
	lerp.SetEnabled(false)

	sess := session.NewSession()
	payload := &session.PlacementPayload{
		Assets: assets.NewRegistry(nil),
		Strategies: placement.NewManager(
			placement.NewRaycastStrategy(world.Colliders),
			placement.NewPlaneStrategy(0),
		),
	}
	require.NoError(t, sess.Begin(session.Placement, payload, settings.Default()))

	frame := &Frame{
		Session:   sess,
		Control:   command.NewControlState(),
		World:     world,
		Lerp:      lerp,
		Log:       log,
		RayOrigin: rl.Vector3{X: 2.3, Y: 10, Z: 4.7},
		RayDir:    rl.Vector3{Y: -1},
		RayOK:     true,
		Now:       time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		DT:        0.016,
	}
	handler := NewPlacementHandler()
	require.NoError(t, handler.Enter(frame))
	return &placementEnv{
		frame:   frame,
		handler: handler,
		world:   world,
		lerp:    lerp,
		sess:    sess,
		payload: payload,
	}
}

func (e *placementEnv) onFrame(cmd command.Command) {
	e.handler.OnFrame(e.frame, cmd)
	e.lerp.Advance(e.frame.DT)
}

func TestEnterSpawnsPreview(t *testing.T) {
	e := newPlacementEnv(t)
	require.NotNil(t, e.payload.Preview)
	assert.Equal(t, "cube", e.payload.Preview.Name)
	assert.NotNil(t, e.world.Node(e.payload.Preview.ID))
}

func TestPreviewSnapsToGridUnderRay(t *testing.T) {
	e := newPlacementEnv(t)
	e.onFrame(command.Command{})

	pos := e.payload.Preview.Pose().Position
	assert.InDelta(t, 2.0, pos.X, 1e-4)
	assert.InDelta(t, 0.0, pos.Y, 1e-4)
	assert.InDelta(t, 5.0, pos.Z, 1e-4)
}

func TestConfirmPlacesAndContinues(t *testing.T) {
	e := newPlacementEnv(t)
	e.onFrame(command.Command{})
	placedID := e.payload.Preview.ID

	e.onFrame(command.Command{Confirm: true})

	placed := e.world.Node(placedID)
	require.NotNil(t, placed, "committed object must stay in the scene")
	assert.InDelta(t, 2.0, placed.Pose().Position.X, 1e-4)
	assert.InDelta(t, 5.0, placed.Pose().Position.Z, 1e-4)

	assert.Equal(t, 1, e.payload.PlacedCount)
	assert.Equal(t, session.Placement, e.sess.Mode(), "place-and-continue keeps the session")
	require.NotNil(t, e.payload.Preview)
	assert.NotEqual(t, placedID, e.payload.Preview.ID)

	// Committed adds are undoable; the live preview is not.
	e.world.Undo()
	assert.Nil(t, e.world.Node(placedID))
	assert.NotNil(t, e.world.Node(e.payload.Preview.ID))
}

func TestCancelDiscardsPreviewAndExits(t *testing.T) {
	e := newPlacementEnv(t)
	e.onFrame(command.Command{})
	previewID := e.payload.Preview.ID

	e.onFrame(command.Command{Cancel: true})
	assert.Equal(t, session.Idle, e.sess.Mode())
	assert.Nil(t, e.world.Node(previewID))
}

func TestCycleAssetRespawnsPreview(t *testing.T) {
	e := newPlacementEnv(t)
	oldID := e.payload.Preview.ID

	e.onFrame(command.Command{CycleAsset: 1})
	require.NotNil(t, e.payload.Preview)
	assert.Equal(t, "sphere", e.payload.Preview.Name)
	assert.Nil(t, e.world.Node(oldID), "stale preview must leave the scene")

	// Cycling backwards wraps.
	e.onFrame(command.Command{CycleAsset: -2})
	assert.Equal(t, "slab", e.payload.Preview.Name)
}

func TestCycleStrategySwitchesActive(t *testing.T) {
	e := newPlacementEnv(t)
	require.Equal(t, "raycast", e.payload.Strategies.Active().Name())
	e.onFrame(command.Command{CycleStrategy: true})
	assert.Equal(t, "plane", e.payload.Strategies.Active().Name())
}

func TestSurfaceAlignTogglePreservesManualOffset(t *testing.T) {
	e := newPlacementEnv(t)
	e.frame.RayOK = false
	st := e.sess.State
	st.ManualRotationOffset.Y = 0.7
	st.SurfaceNormal = rl.Vector3{X: 1}

	e.onFrame(command.Command{ToggleAlign: true})
	assert.NotEqual(t, rl.Vector3{}, st.SurfaceAlignmentRotation)
	assert.InDelta(t, 0.7, st.ManualRotationOffset.Y, 1e-5)

	e.onFrame(command.Command{ToggleAlign: true})
	assert.Equal(t, rl.Vector3{}, st.SurfaceAlignmentRotation)
	assert.InDelta(t, 0.7, st.ManualRotationOffset.Y, 1e-5)
}

func TestNumericAbsoluteRotation(t *testing.T) {
	e := newPlacementEnv(t)
	e.onFrame(command.Command{
		HasNumeric:    true,
		NumericValue:  90,
		NumericPrefix: numeric.Absolute,
		NumericTarget: numeric.RotateY,
	})
	assert.InDelta(t, math32.Pi/2, e.sess.State.ManualRotationOffset.Y, 1e-4)
}

func TestHeightStepRaisesPreview(t *testing.T) {
	e := newPlacementEnv(t)
	e.onFrame(command.Command{Height: 0.5})
	assert.InDelta(t, 0.5, e.payload.Preview.Pose().Position.Y, 1e-4)
}

func TestAxisConstraintPinsUnconstrained(t *testing.T) {
	e := newPlacementEnv(t)
	e.onFrame(command.Command{})
	origin := e.sess.State.TargetPosition

	e.frame.Control.ToggleAxis(transform.AxisX, origin)
	e.frame.RayOrigin = rl.Vector3{X: 7.3, Y: 10, Z: 8.2}
	e.onFrame(command.Command{})

	pos := e.payload.Preview.Pose().Position
	assert.InDelta(t, 7.0, pos.X, 1e-4, "constrained axis still follows the ray")
	assert.InDelta(t, origin.Y, pos.Y, 1e-4)
	assert.InDelta(t, origin.Z, pos.Z, 1e-4, "unconstrained axes stay pinned to the origin")
}

func TestScaleStepGrowsPreview(t *testing.T) {
	e := newPlacementEnv(t)
	e.onFrame(command.Command{Scale: 0.5})
	assert.InDelta(t, 1.5, e.payload.Preview.Pose().Scale.X, 1e-4)
}

func TestExitDiscardsPreview(t *testing.T) {
	e := newPlacementEnv(t)
	previewID := e.payload.Preview.ID
	e.handler.Exit(e.frame)
	assert.Nil(t, e.world.Node(previewID))
}
