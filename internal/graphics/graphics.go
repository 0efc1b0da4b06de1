package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run starts the window and main loop. Each frame it calls update with the frame delta
// in seconds (input + manipulation engine), then clears the screen and calls draw
// (scene, grid, HUD). This keeps the graphics layer separate from the engine core.
// ESC is owned by the engine (cancel semantics), so it is not the exit key; close via window button.
func Run(update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(1600, 900, "placement engine")
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
