package modes

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/command"
	"placement-engine/internal/placement"
	"placement-engine/internal/scene"
	"placement-engine/internal/session"
	"placement-engine/internal/transform"
)

// PlacementHandler drives an active placement session: move a preview with the mouse,
// adjust it with keys/wheel/numeric entry, confirm to commit and immediately continue
// with a fresh preview ("place and continue").
type PlacementHandler struct {
	frame     *Frame
	alignOn   bool
	lastMouse rl.Vector2
	haveMouse bool
}

// NewPlacementHandler returns an idle handler; Enter starts a session's preview.
func NewPlacementHandler() *PlacementHandler {
	return &PlacementHandler{}
}

// BeginFrame stores the frame context before router dispatch so the modal callbacks
// can see mouse state.
func (h *PlacementHandler) BeginFrame(f *Frame) {
	h.frame = f
}

// Enter spawns the initial preview for the session's current asset.
func (h *PlacementHandler) Enter(f *Frame) error {
	p := f.Session.PlacementPayload()
	if p == nil {
		return fmt.Errorf("placement: session has no placement payload")
	}
	h.frame = f
	h.alignOn = f.Session.Settings.SurfaceAlign
	h.haveMouse = false
	h.spawnPreview(f, p)
	return nil
}

// OnFrame consumes this frame's command. Cancel discards the preview and exits the
// mode synchronously in the same frame.
func (h *PlacementHandler) OnFrame(f *Frame, cmd command.Command) {
	p := f.Session.PlacementPayload()
	if p == nil {
		f.Log.Warnf("placement: payload missing, exiting")
		f.Session.End()
		return
	}
	st := f.Session.State

	if cmd.Cancel {
		h.discardPreview(f, p)
		f.Session.End()
		return
	}

	if cmd.CycleStrategy {
		p.Strategies.Cycle()
	}
	if cmd.CycleAsset != 0 {
		p.AssetIndex = p.Assets.Wrap(p.AssetIndex + cmd.CycleAsset)
		h.discardPreview(f, p)
		h.spawnPreview(f, p)
	}
	if cmd.ToggleAlign {
		h.alignOn = !h.alignOn
		rotSvc.SetSurfaceAlignment(st, h.alignOn)
	}

	st.Snap.HalfStep = cmd.Mods.Fine
	applySteps(st, cmd)
	applyNumeric(st, cmd)

	if f.RayOK {
		if strat := p.Strategies.Active(); strat != nil {
			exclude := placement.ExclusionSet{}
			if p.Preview != nil {
				p.Preview.Descendants(exclude)
			}
			res := strat.CalculatePosition(f.RayOrigin, f.RayDir, exclude)
			yLocked := f.Control.AxisEnabled(transform.AxisY)
			posSvc.Apply(st, res, yLocked, cmd.Mods.Fine)
		}
	}
	constrainPosition(f.Control, st)
	if h.alignOn {
		rotSvc.SetSurfaceAlignment(st, true)
	}

	if p.Preview != nil {
		f.Lerp.SetTarget(p.Preview.ID, h.previewPose(st))
	}

	if cmd.Confirm && p.Preview != nil {
		h.commit(f, p)
	}

	h.lastMouse = f.Mouse
	h.haveMouse = true
}

// Exit discards any live preview; the committed objects stay.
func (h *PlacementHandler) Exit(f *Frame) {
	if p := f.Session.PlacementPayload(); p != nil {
		h.discardPreview(f, p)
	}
}

// commit finalizes the preview at its exact target (no visible slide), records an
// undoable add, and immediately starts the next preview.
func (h *PlacementHandler) commit(f *Frame, p *session.PlacementPayload) {
	node := p.Preview
	f.Lerp.ApplyImmediately(node.ID)
	f.Lerp.Untrack(node.ID)
	f.World.Detach(node.ID)
	f.World.AddNode(node)
	p.Preview = nil
	p.PlacedCount++
	f.Log.Infof("placed %s at %v", node.Name, node.Pose().Position)
	h.spawnPreview(f, p)
}

func (h *PlacementHandler) spawnPreview(f *Frame, p *session.PlacementPayload) {
	def := p.Assets.At(p.AssetIndex)
	node := scene.NewNode(def.Name)
	node.Size = rl.Vector3{X: def.Size[0], Y: def.Size[1], Z: def.Size[2]}
	st := f.Session.State
	pose := h.previewPose(st)
	node.SetPose(pose)
	f.World.Attach(node)
	f.Lerp.Track(node.ID, node, pose)
	p.Preview = node
}

func (h *PlacementHandler) discardPreview(f *Frame, p *session.PlacementPayload) {
	if p.Preview == nil {
		return
	}
	f.Lerp.Untrack(p.Preview.ID)
	f.World.Detach(p.Preview.ID)
	p.Preview = nil
}

func (h *PlacementHandler) previewPose(st *transform.State) transform.Pose {
	return transform.Pose{
		Position: st.TargetPosition,
		Rotation: st.FinalRotation(),
		Scale:    sclSvc.PreviewScale(st, rl.Vector3{X: 1, Y: 1, Z: 1}),
	}
}

// ApplyPositionModal is the mouse-position modal: positioning already follows the
// mouse every frame, so the callback only records provenance.
func (h *PlacementHandler) ApplyPositionModal(cmd *command.Command) {
	cmd.Meta["modal_applied"] = "position"
}

// ApplyRotationModal maps horizontal mouse travel onto the constrained (or Y) axis.
func (h *PlacementHandler) ApplyRotationModal(cmd *command.Command) {
	cmd.Meta["modal_applied"] = "rotation"
	if h.frame == nil || !h.haveMouse {
		return
	}
	dx := h.frame.Mouse.X - h.lastMouse.X
	axis := transform.AxisY
	if a, one := h.frame.Control.ConstrainedAxis(); one {
		axis = a
	}
	switch axis {
	case transform.AxisX:
		cmd.Rotate.X += dx * mouseRotatePerPixel
	case transform.AxisZ:
		cmd.Rotate.Z += dx * mouseRotatePerPixel
	default:
		cmd.Rotate.Y += dx * mouseRotatePerPixel
	}
}

// ApplyScaleModal maps horizontal mouse travel onto the uniform multiplier.
func (h *PlacementHandler) ApplyScaleModal(cmd *command.Command) {
	cmd.Meta["modal_applied"] = "scale"
	if h.frame == nil || !h.haveMouse {
		return
	}
	dx := h.frame.Mouse.X - h.lastMouse.X
	cmd.Scale += dx * mouseScalePerPixel
}
