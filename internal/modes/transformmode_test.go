package modes

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-engine/internal/command"
	"placement-engine/internal/logger"
	"placement-engine/internal/numeric"
	"placement-engine/internal/placement"
	"placement-engine/internal/scene"
	"placement-engine/internal/session"
	"placement-engine/internal/settings"
	"placement-engine/internal/smoothing"
)

type transformEnv struct {
	frame   *Frame
	handler *TransformHandler
	world   *scene.World
	lerp    *smoothing.Interpolator
	sess    *session.Session
	payload *session.TransformPayload
	nodes   []*scene.Node
}

// newTransformEnv builds an active transform session over three objects at
// (1,0,0), (-1,0,0) and (0,0,3); their centroid is (0,0,1). No mouse ray, so the
// group stays planted unless a command moves it.
func newTransformEnv(t *testing.T) *transformEnv {
	t.Helper()
	log := &logger.Logger{}
	world := scene.NewWorld(log)
	lerp := smoothing.New(18)
	lerp.SetEnabled(false)

	positions := []rl.Vector3{{X: 1}, {X: -1}, {Z: 3}}
	nodes := make([]*scene.Node, len(positions))
	targets := make([]session.TargetObject, len(positions))
	for i, p := range positions {
		n := scene.NewNode("cube")
		pose := n.Pose()
		pose.Position = p
		n.SetPose(pose)
		world.AddNode(n)
		nodes[i] = n
		targets[i] = session.TargetObject{Node: n, Original: n.Pose()}
	}

	sess := session.NewSession()
	payload := &session.TransformPayload{Targets: targets}
	require.NoError(t, sess.Begin(session.Transform, payload, settings.Default()))

	frame := &Frame{
		Session: sess,
		Control: command.NewControlState(),
		World:   world,
		Lerp:    lerp,
		Log:     log,
		Now:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		DT:      0.016,
	}
	handler := NewTransformHandler(placement.NewManager(placement.NewPlaneStrategy(0)))
	require.NoError(t, handler.Enter(frame))
	return &transformEnv{
		frame:   frame,
		handler: handler,
		world:   world,
		lerp:    lerp,
		sess:    sess,
		payload: payload,
		nodes:   nodes,
	}
}

func (e *transformEnv) onFrame(cmd command.Command) {
	e.handler.OnFrame(e.frame, cmd)
	e.lerp.Advance(e.frame.DT)
}

func dist(a, b rl.Vector3) float32 {
	return rl.Vector3Length(rl.Vector3Subtract(a, b))
}

func TestEnterComputesCentroid(t *testing.T) {
	e := newTransformEnv(t)
	assert.InDelta(t, 0, e.payload.Centroid.X, 1e-5)
	assert.InDelta(t, 0, e.payload.Centroid.Y, 1e-5)
	assert.InDelta(t, 1, e.payload.Centroid.Z, 1e-5)
	assert.Equal(t, e.payload.Centroid, e.sess.State.TargetPosition)
}

func TestEnterRejectsEmptySelection(t *testing.T) {
	log := &logger.Logger{}
	sess := session.NewSession()
	require.NoError(t, sess.Begin(session.Transform, &session.TransformPayload{}, settings.Default()))
	frame := &Frame{Session: sess, Control: command.NewControlState(), World: scene.NewWorld(log), Lerp: smoothing.New(18), Log: log}
	h := NewTransformHandler(placement.NewManager())
	assert.Error(t, h.Enter(frame))
}

func TestGroupOrbits90AroundCentroid(t *testing.T) {
	e := newTransformEnv(t)
	centroid := e.payload.Centroid
	before := make([]rl.Vector3, len(e.nodes))
	for i, n := range e.nodes {
		before[i] = n.Pose().Position
	}

	e.onFrame(command.Command{Rotate: rl.Vector3{Y: math32.Pi / 2}})

	for i, n := range e.nodes {
		after := n.Pose().Position
		// Orbit: distance to the centroid is preserved, and for a quarter turn around
		// Y the horizontal offset ends up perpendicular to where it started.
		assert.InDelta(t, dist(before[i], centroid), dist(after, centroid), 1e-3, "node %d radius", i)
		assert.InDelta(t, 0, after.Y, 1e-3, "node %d stays in plane", i)
		ob := rl.Vector3Subtract(before[i], centroid)
		oa := rl.Vector3Subtract(after, centroid)
		assert.InDelta(t, 0, rl.Vector3DotProduct(ob, oa), 1e-3, "node %d quarter turn", i)
		// Orientation advances with the group, preserving each object's own heading.
		assert.InDelta(t, math32.Pi/2, n.Pose().Rotation.Y, 1e-3, "node %d heading", i)
	}

	// Rigid body: pairwise distances survive the orbit.
	assert.InDelta(t, dist(before[0], before[1]),
		dist(e.nodes[0].Pose().Position, e.nodes[1].Pose().Position), 1e-3)
	assert.InDelta(t, dist(before[0], before[2]),
		dist(e.nodes[0].Pose().Position, e.nodes[2].Pose().Position), 1e-3)
}

func TestKeyboardMoveShiftsGroup(t *testing.T) {
	e := newTransformEnv(t)
	e.onFrame(command.Command{Move: rl.Vector3{X: 1}})
	e.onFrame(command.Command{Height: 0.5})

	for i, n := range e.nodes {
		orig := e.payload.Targets[i].Original.Position
		pos := n.Pose().Position
		assert.InDelta(t, orig.X+1, pos.X, 1e-4)
		assert.InDelta(t, orig.Y+0.5, pos.Y, 1e-4)
		assert.InDelta(t, orig.Z, pos.Z, 1e-4)
	}
}

func TestScaleAdditivePerOriginal(t *testing.T) {
	e := newTransformEnv(t)
	big := e.nodes[0]
	pose := big.Pose()
	pose.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	big.SetPose(pose)
	e.payload.Targets[0].Original = big.Pose()

	e.onFrame(command.Command{Scale: 0.5})
	assert.InDelta(t, 2.5, e.nodes[0].Pose().Scale.X, 1e-4, "scale offsets add around each original")
	assert.InDelta(t, 1.5, e.nodes[1].Pose().Scale.X, 1e-4)
}

func TestCancelRevertsEverything(t *testing.T) {
	e := newTransformEnv(t)
	e.onFrame(command.Command{Rotate: rl.Vector3{Y: math32.Pi / 2}, Move: rl.Vector3{X: 3}})

	e.onFrame(command.Command{Cancel: true})
	assert.Equal(t, session.Idle, e.sess.Mode())
	for i, n := range e.nodes {
		assert.Equal(t, e.payload.Targets[i].Original, n.Pose(), "node %d reverted", i)
	}
}

func TestConfirmCommitsWithGroupUndo(t *testing.T) {
	e := newTransformEnv(t)
	e.onFrame(command.Command{Move: rl.Vector3{X: 2}})
	moved := make([]rl.Vector3, len(e.nodes))
	for i, n := range e.nodes {
		moved[i] = n.Pose().Position
	}

	e.onFrame(command.Command{Confirm: true})
	assert.Equal(t, session.Idle, e.sess.Mode())
	for i, n := range e.nodes {
		assert.Equal(t, moved[i], n.Pose().Position, "node %d keeps its committed pose", i)
	}

	// One undo covers the whole group.
	e.world.Undo()
	for i, n := range e.nodes {
		assert.Equal(t, e.payload.Targets[i].Original.Position, n.Pose().Position, "node %d undone", i)
	}
	e.world.Redo()
	for i, n := range e.nodes {
		assert.Equal(t, moved[i], n.Pose().Position, "node %d redone", i)
	}
}

func TestNumericAbsoluteMovesGroupToCoordinate(t *testing.T) {
	e := newTransformEnv(t)
	e.onFrame(command.Command{
		HasNumeric:    true,
		NumericValue:  10,
		NumericPrefix: numeric.Absolute,
		NumericTarget: numeric.MoveX,
	})
	assert.InDelta(t, 10, e.sess.State.TargetPosition.X, 1e-4)
	// node offsets ride along unchanged
	assert.InDelta(t, 11, e.nodes[0].Pose().Position.X, 1e-4)
	assert.InDelta(t, 9, e.nodes[1].Pose().Position.X, 1e-4)
}
