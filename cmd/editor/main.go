package main

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/engine"
	"placement-engine/internal/graphics"
	"placement-engine/internal/input"
	"placement-engine/internal/logger"
	"placement-engine/internal/overlay"
	"placement-engine/internal/scene"
	"placement-engine/internal/settings"
)

func main() {
	log := logger.New()
	cfg, err := settings.Load()
	if err != nil {
		log.Warnf("settings: %v", err)
	}

	world := scene.NewWorld(log)
	seedGround(world)

	cam := scene.NewCamera()
	hud := overlay.NewHUD()

	svc := &engine.Services{
		Camera:   cam,
		World:    world,
		Settings: func() settings.Snapshot { return cfg },
		Overlay:  hud,
		Log:      log,
	}
	orch := engine.New(svc, input.LiveDevice{}, time.Now)

	update := func(dt float32) {
		cam.Update()
		orch.Advance(dt)
	}
	draw := func() {
		rl.BeginMode3D(cam.Cam)
		overlay.DrawGrid(cfg.PositionStepXZ, 0)
		drawNodes(world)
		rl.EndMode3D()
		hud.Draw()
	}
	graphics.Run(update, draw)
}

// seedGround adds a wide slab under the origin so the raycast strategy has geometry
// to hit before anything has been placed.
func seedGround(world *scene.World) {
	ground := scene.NewNode("ground")
	ground.Size = rl.Vector3{X: 40, Y: 0.5, Z: 40}
	pose := ground.Pose()
	pose.Position.Y = -0.25
	ground.SetPose(pose)
	world.Attach(ground)
}

func drawNodes(world *scene.World) {
	for _, c := range world.Colliders() {
		size := rl.Vector3Subtract(c.Box.Max, c.Box.Min)
		center := rl.Vector3Add(c.Box.Min, rl.Vector3Scale(size, 0.5))
		rl.DrawCubeV(center, size, rl.NewColor(90, 110, 160, 160))
		rl.DrawBoundingBox(c.Box, rl.LightGray)
	}
}
