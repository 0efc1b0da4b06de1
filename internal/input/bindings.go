package input

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placement-engine/internal/settings"
)

// Action is a logical input the engine monitors, resolved from user-configurable
// bindings. Names match the keys of the settings bindings map.
type Action string

const (
	ActionModalPosition Action = "modal_position"
	ActionModalRotation Action = "modal_rotation"
	ActionModalScale    Action = "modal_scale"
	ActionAxisX         Action = "axis_x"
	ActionAxisY         Action = "axis_y"
	ActionAxisZ         Action = "axis_z"
	ActionConfirm       Action = "confirm"
	ActionCancel        Action = "cancel"
	ActionRotateLeft    Action = "rotate_left"
	ActionRotateRight   Action = "rotate_right"
	ActionHeightUp      Action = "height_up"
	ActionHeightDown    Action = "height_down"
	ActionScaleUp       Action = "scale_up"
	ActionScaleDown     Action = "scale_down"
	ActionAssetNext     Action = "asset_next"
	ActionAssetPrev     Action = "asset_prev"
	ActionCycleStrategy Action = "cycle_strategy"
	ActionSurfaceAlign  Action = "surface_align"
	ActionPlaceMode     Action = "place_mode"
	ActionTransformMode Action = "transform_mode"
	ActionBackspace     Action = "backspace"
	ActionNudgeLeft     Action = "nudge_left"
	ActionNudgeRight    Action = "nudge_right"
	ActionNudgeForward  Action = "nudge_forward"
	ActionNudgeBack     Action = "nudge_back"
)

// ActionOrder is the stable precedence used when several keys are simultaneously
// eligible to start repeating: earliest entry wins.
var ActionOrder = []Action{
	ActionModalPosition, ActionModalRotation, ActionModalScale,
	ActionAxisX, ActionAxisY, ActionAxisZ,
	ActionConfirm, ActionCancel,
	ActionRotateLeft, ActionRotateRight,
	ActionHeightUp, ActionHeightDown,
	ActionScaleUp, ActionScaleDown,
	ActionAssetNext, ActionAssetPrev,
	ActionCycleStrategy, ActionSurfaceAlign,
	ActionPlaceMode, ActionTransformMode, ActionBackspace,
	ActionNudgeLeft, ActionNudgeRight, ActionNudgeForward, ActionNudgeBack,
}

// RepeatInterval returns the hold-to-repeat interval for an action, or 0 when the
// action never repeats. Intervals are per action type: rotation is the slowest,
// position nudging the fastest.
func RepeatInterval(a Action) time.Duration {
	switch a {
	case ActionRotateLeft, ActionRotateRight:
		return 100 * time.Millisecond
	case ActionScaleUp, ActionScaleDown, ActionHeightUp, ActionHeightDown:
		return 80 * time.Millisecond
	case ActionNudgeLeft, ActionNudgeRight, ActionNudgeForward, ActionNudgeBack:
		return 50 * time.Millisecond
	}
	return 0
}

// Binding is a resolved key binding: one base key plus required modifiers. The base
// key may itself be a modifier (bare-modifier bindings are valid). Matching requires
// all listed modifiers plus the base key; other held modifiers are not rejected —
// conflict avoidance is done by choosing distinct bindings, not by exclusivity.
type Binding struct {
	Key  keyRef
	Mods []keyRef
}

// Down reports whether the full binding is currently held on the device.
func (b Binding) Down(dev Device) bool {
	for _, m := range b.Mods {
		if !m.down(dev) {
			return false
		}
	}
	return b.Key.down(dev)
}

// keyRef is either a single key code or a left/right modifier pair.
type keyRef struct {
	key  int32
	pair int32 // second key of a modifier pair, 0 when unused
}

func (k keyRef) down(dev Device) bool {
	if dev.KeyDown(k.key) {
		return true
	}
	return k.pair != 0 && dev.KeyDown(k.pair)
}

// keyNames maps settings key names to raylib key codes. Modifier names map to
// left/right pairs.
var keyNames = map[string]keyRef{
	"a": {key: rl.KeyA}, "b": {key: rl.KeyB}, "c": {key: rl.KeyC}, "d": {key: rl.KeyD},
	"e": {key: rl.KeyE}, "f": {key: rl.KeyF}, "g": {key: rl.KeyG}, "h": {key: rl.KeyH},
	"i": {key: rl.KeyI}, "j": {key: rl.KeyJ}, "k": {key: rl.KeyK}, "l": {key: rl.KeyL},
	"m": {key: rl.KeyM}, "n": {key: rl.KeyN}, "o": {key: rl.KeyO}, "p": {key: rl.KeyP},
	"q": {key: rl.KeyQ}, "r": {key: rl.KeyR}, "s": {key: rl.KeyS}, "t": {key: rl.KeyT},
	"u": {key: rl.KeyU}, "v": {key: rl.KeyV}, "w": {key: rl.KeyW}, "x": {key: rl.KeyX},
	"y": {key: rl.KeyY}, "z": {key: rl.KeyZ},
	"0": {key: rl.KeyZero}, "1": {key: rl.KeyOne}, "2": {key: rl.KeyTwo},
	"3": {key: rl.KeyThree}, "4": {key: rl.KeyFour}, "5": {key: rl.KeyFive},
	"6": {key: rl.KeySix}, "7": {key: rl.KeySeven}, "8": {key: rl.KeyEight},
	"9": {key: rl.KeyNine},
	"enter":     {key: rl.KeyEnter, pair: rl.KeyKpEnter},
	"escape":    {key: rl.KeyEscape},
	"tab":       {key: rl.KeyTab},
	"space":     {key: rl.KeySpace},
	"comma":     {key: rl.KeyComma},
	"period":    {key: rl.KeyPeriod},
	"minus":     {key: rl.KeyMinus},
	"equal":     {key: rl.KeyEqual},
	"lbracket":  {key: rl.KeyLeftBracket},
	"rbracket":  {key: rl.KeyRightBracket},
	"backspace": {key: rl.KeyBackspace},
	"left":      {key: rl.KeyLeft},
	"right":     {key: rl.KeyRight},
	"up":        {key: rl.KeyUp},
	"down":      {key: rl.KeyDown},
	"ctrl":      {key: rl.KeyLeftControl, pair: rl.KeyRightControl},
	"shift":     {key: rl.KeyLeftShift, pair: rl.KeyRightShift},
	"alt":       {key: rl.KeyLeftAlt, pair: rl.KeyRightAlt},
	"super":     {key: rl.KeyLeftSuper, pair: rl.KeyRightSuper},
}

// ResolveKey looks up a settings key name.
func ResolveKey(name string) (keyRef, error) {
	k, ok := keyNames[strings.ToLower(name)]
	if !ok {
		return keyRef{}, fmt.Errorf("unknown key name %q", name)
	}
	return k, nil
}

// ParseBindings resolves the settings bindings map into Binding values. Unknown key
// names fail the whole parse so the caller can fall back to defaults and warn.
func ParseBindings(raw map[string]settings.KeyBinding) (map[Action]Binding, error) {
	out := make(map[Action]Binding, len(raw))
	for name, kb := range raw {
		key, err := ResolveKey(kb.Key)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		b := Binding{Key: key}
		for _, mod := range kb.Mods {
			m, err := ResolveKey(mod)
			if err != nil {
				return nil, fmt.Errorf("binding %s: %w", name, err)
			}
			b.Mods = append(b.Mods, m)
		}
		out[Action(name)] = b
	}
	return out, nil
}
