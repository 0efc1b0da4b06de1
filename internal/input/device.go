package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Device is the raw input surface the snapshot polls once per frame. The live
// implementation wraps raylib; tests substitute a scripted fake so the edge/tap/repeat
// state machine runs without a window.
type Device interface {
	KeyDown(key int32) bool
	MouseButtonDown(button rl.MouseButton) bool
	MousePosition() rl.Vector2
	WheelMove() float32
	// PressedChars drains the text-input queue for this frame (numeric entry).
	PressedChars() []rune
}

// LiveDevice reads from raylib. Valid only between InitWindow and CloseWindow.
type LiveDevice struct{}

func (LiveDevice) KeyDown(key int32) bool { return rl.IsKeyDown(key) }

func (LiveDevice) MouseButtonDown(button rl.MouseButton) bool {
	return rl.IsMouseButtonDown(button)
}

func (LiveDevice) MousePosition() rl.Vector2 { return rl.GetMousePosition() }

func (LiveDevice) WheelMove() float32 { return rl.GetMouseWheelMove() }

func (LiveDevice) PressedChars() []rune {
	var chars []rune
	for {
		c := rl.GetCharPressed()
		if c == 0 {
			break
		}
		chars = append(chars, rune(c))
	}
	return chars
}
