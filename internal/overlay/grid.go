package overlay

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMajorEvery = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// DrawGrid draws a Unity-style grid on the XZ plane at the given height, with minor
// line spacing matching the active snap step so snapped movement lands on visible
// lines. Reuses start/end vectors to avoid per-frame allocations in the hot loop.
// Call between BeginMode3D and EndMode3D.
func DrawGrid(step, height float32) {
	if step <= 0 {
		step = 1
	}
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	lines := int(float32(gridExtent) / step)
	extent := float32(lines) * step

	var start, end rl.Vector3
	for i := -lines; i <= lines; i++ {
		c := major
		if i%gridMajorEvery != 0 {
			c = minor
		}
		v := float32(i) * step
		start.X, start.Y, start.Z = v, height, -extent
		end.X, end.Y, end.Z = v, height, extent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -extent, height, v
		end.X, end.Y, end.Z = extent, height, v
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = -extent, height, 0
	end.X, end.Y, end.Z = extent, height, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, -extent, 0
	end.X, end.Y, end.Z = 0, extent, 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, height, -extent
	end.X, end.Y, end.Z = 0, height, extent
	rl.DrawLine3D(start, end, axisZ)
}

// DrawNodeBoxes draws wireframe boxes for a set of bounding boxes (scene objects and
// the live preview). Call between BeginMode3D and EndMode3D.
func DrawNodeBoxes(boxes []rl.BoundingBox, color rl.Color) {
	for _, b := range boxes {
		rl.DrawBoundingBox(b, color)
	}
}
