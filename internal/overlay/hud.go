package overlay

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/engine"
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	// updateInterval: only rebuild the readout strings every N frames to reduce allocations.
	updateInterval = 10
)

var (
	hudKeyColor = rl.NewColor(180, 180, 180, 255)
	hudNumColor = rl.NewColor(255, 220, 120, 255)
	hudAxisOn   = rl.NewColor(120, 220, 120, 255)
)

// HUD is the overlay sink: it receives display-only state every frame and draws it.
// The engine never reads anything back from it.
type HUD struct {
	state      engine.OverlayState
	frameCount uint32

	lastPoseText  string
	lastModeText  string
	lastAssetText string
}

// NewHUD returns an empty HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Refresh stores this frame's overlay state. Called by the orchestrator at the end of
// its frame, before any drawing.
func (h *HUD) Refresh(s engine.OverlayState) {
	h.state = s
}

// Draw renders the HUD: mode/modal at top-left, pose readout at top-right, numeric
// entry and keybind hints at the bottom. Call inside the 2D phase of the draw loop.
func (h *HUD) Draw() {
	h.frameCount++
	update := h.frameCount%updateInterval == 0 || h.lastModeText == ""

	s := h.state
	if update {
		h.lastModeText = h.modeLine(s)
		h.lastPoseText = fmt.Sprintf("pos (%.2f %.2f %.2f)  rot (%.0f %.0f %.0f)  scale %.2f",
			s.Position.X, s.Position.Y, s.Position.Z,
			s.RotationDeg.X, s.RotationDeg.Y, s.RotationDeg.Z,
			s.Scale)
		h.lastAssetText = h.assetLine(s)
	}

	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	rl.DrawText(h.lastModeText, hudPadding, hudPadding, hudFontSize, rl.White)
	if h.lastAssetText != "" {
		rl.DrawText(h.lastAssetText, hudPadding, hudPadding+hudLineHeight, hudFontSize, hudKeyColor)
	}
	h.drawAxes(s, hudPadding, hudPadding+2*hudLineHeight)

	w := rl.MeasureText(h.lastPoseText, hudFontSize)
	rl.DrawText(h.lastPoseText, screenW-w-hudPadding, hudPadding, hudFontSize, rl.Green)

	y := screenH - hudPadding - hudLineHeight
	if s.NumericBuffer != "" || s.NumericTarget != "" {
		text := fmt.Sprintf("%s: %s|", s.NumericTarget, s.NumericBuffer)
		rl.DrawText(text, hudPadding, y, hudFontSize, hudNumColor)
		y -= hudLineHeight
	}
	if len(s.Hints) > 0 {
		rl.DrawText(strings.Join(s.Hints, "   "), hudPadding, y, hudFontSize, hudKeyColor)
	}
}

func (h *HUD) modeLine(s engine.OverlayState) string {
	line := "mode: " + s.Mode
	if s.ModalActive {
		line += "  modal: " + s.Modal
	}
	if s.Strategy != "" {
		line += "  strategy: " + s.Strategy
	}
	return line
}

func (h *HUD) assetLine(s engine.OverlayState) string {
	if s.Asset == "" {
		return ""
	}
	return "asset: " + s.Asset
}

func (h *HUD) drawAxes(s engine.OverlayState, x, y int32) {
	if !s.Axes[0] && !s.Axes[1] && !s.Axes[2] {
		return
	}
	labels := [3]string{"X", "Y", "Z"}
	for i, on := range s.Axes {
		c := hudKeyColor
		if on {
			c = hudAxisOn
		}
		rl.DrawText(labels[i], x+int32(i)*24, y, hudFontSize, c)
	}
}
