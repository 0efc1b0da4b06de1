package input

import (
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TapGrace is the window separating a discrete tap from a hold. A key released within
// the grace is a tap; a key held past it becomes eligible for hold-to-repeat.
const TapGrace = 150 * time.Millisecond

// modifierNames are the modifier pairs watched for the repeat-cancelling
// "modifier change while repeating" rule.
var modifierNames = []string{"ctrl", "shift", "alt", "super"}

// actionState is the per-frame derived state of one monitored action.
type actionState struct {
	pressed      bool
	justPressed  bool
	justReleased bool
	tapped       bool
	repeatFired  bool

	pressedAt  time.Time
	nextRepeat time.Time

	// armed: the hold has crossed the tap grace, so the key has announced itself as a
	// repeat candidate once. Reset on press.
	armed bool
	// suppressed: the key must be fully released and re-pressed before it can tap or
	// repeat again (wheel interruption, repeat takeover, modifier change).
	suppressed bool
}

// Snapshot polls the device once per frame and derives edges, tap-vs-hold
// classification, hold-to-repeat firing and wheel interruption for every bound action.
// All timing is wall-clock via the injected clock but resolved synchronously in Update.
type Snapshot struct {
	dev      Device
	bindings map[Action]Binding
	order    []Action
	states   map[Action]*actionState

	repeater     Action // "" when no key is repeating
	repeaterMods string

	wheel float32
	chars []rune
	mouse rl.Vector2

	leftDown, rightDown       bool
	leftWasDown, rightWasDown bool
}

// NewSnapshot returns a snapshot over the given device and resolved bindings. Actions
// are evaluated in ActionOrder; actions without a binding are simply never pressed.
func NewSnapshot(dev Device, bindings map[Action]Binding) *Snapshot {
	s := &Snapshot{
		dev:      dev,
		bindings: bindings,
		order:    ActionOrder,
		states:   make(map[Action]*actionState, len(ActionOrder)),
	}
	for _, a := range s.order {
		s.states[a] = &actionState{}
	}
	return s
}

// Rebind swaps the binding table (settings changed). Held state is kept; a key whose
// binding changed mid-press resolves as released next frame.
func (s *Snapshot) Rebind(bindings map[Action]Binding) {
	s.bindings = bindings
}

// Update polls the device and advances every action's state machine. Call exactly once
// per frame, before command routing.
func (s *Snapshot) Update(now time.Time) {
	s.wheel = s.dev.WheelMove()
	s.chars = s.dev.PressedChars()
	s.mouse = s.dev.MousePosition()

	s.leftWasDown = s.leftDown
	s.rightWasDown = s.rightDown
	s.leftDown = s.dev.MouseButtonDown(rl.MouseLeftButton)
	s.rightDown = s.dev.MouseButtonDown(rl.MouseRightButton)

	wheelFired := s.wheel != 0
	modSig := s.modifierSignature()

	var newlyArmed []Action
	for _, a := range s.order {
		st := s.states[a]
		st.justPressed = false
		st.justReleased = false
		st.tapped = false
		st.repeatFired = false

		b, bound := s.bindings[a]
		down := bound && b.Down(s.dev)

		if down && !st.pressed {
			st.justPressed = true
			st.pressedAt = now
			st.armed = false
			st.suppressed = false
		}
		if down && wheelFired {
			// Wheel interruption: the key must be released and re-pressed before it
			// can tap or repeat again.
			st.suppressed = true
			if s.repeater == a {
				s.repeater = ""
			}
		}
		if !down && st.pressed {
			st.justReleased = true
			if !st.suppressed && now.Sub(st.pressedAt) <= TapGrace {
				st.tapped = true
			}
			st.suppressed = false
			st.armed = false
			if s.repeater == a {
				s.repeater = ""
			}
		}
		st.pressed = down

		if st.pressed && !st.suppressed && !st.armed &&
			RepeatInterval(a) > 0 && now.Sub(st.pressedAt) >= TapGrace {
			st.armed = true
			newlyArmed = append(newlyArmed, a)
		}
	}

	// A key crossing the grace this frame takes over the repeating slot; the previous
	// repeater is cancelled and must be re-pressed.
	if len(newlyArmed) > 0 {
		next := newlyArmed[0]
		if s.repeater != "" && s.repeater != next {
			s.states[s.repeater].suppressed = true
		}
		s.repeater = next
		s.repeaterMods = modSig
		st := s.states[next]
		st.repeatFired = true
		st.nextRepeat = now.Add(RepeatInterval(next))
		return
	}

	if s.repeater == "" {
		return
	}
	st := s.states[s.repeater]
	if !st.pressed || st.suppressed {
		s.repeater = ""
		return
	}
	if modSig != s.repeaterMods {
		// Held modifiers changed under the repeat: force a re-press.
		st.suppressed = true
		s.repeater = ""
		return
	}
	if !now.Before(st.nextRepeat) {
		st.repeatFired = true
		st.nextRepeat = st.nextRepeat.Add(RepeatInterval(s.repeater))
	}
}

func (s *Snapshot) modifierSignature() string {
	var sb strings.Builder
	for _, name := range modifierNames {
		if s.ModifierHeld(name) {
			sb.WriteString(name)
			sb.WriteByte(';')
		}
	}
	return sb.String()
}

// Pressed reports whether the action's binding is currently held.
func (s *Snapshot) Pressed(a Action) bool { return s.states[a] != nil && s.states[a].pressed }

// JustPressed reports a press edge this frame.
func (s *Snapshot) JustPressed(a Action) bool {
	return s.states[a] != nil && s.states[a].justPressed
}

// JustReleased reports a release edge this frame.
func (s *Snapshot) JustReleased(a Action) bool {
	return s.states[a] != nil && s.states[a].justReleased
}

// Tapped reports that the action was released within the tap grace this frame.
func (s *Snapshot) Tapped(a Action) bool { return s.states[a] != nil && s.states[a].tapped }

// RepeatFired reports a hold-to-repeat tick for the action this frame.
func (s *Snapshot) RepeatFired(a Action) bool {
	return s.states[a] != nil && s.states[a].repeatFired
}

// HeldFor returns how long the action has been held, or 0 when not pressed.
func (s *Snapshot) HeldFor(a Action, now time.Time) time.Duration {
	st := s.states[a]
	if st == nil || !st.pressed {
		return 0
	}
	return now.Sub(st.pressedAt)
}

// Repeater returns the action currently in the repeating state, or "".
func (s *Snapshot) Repeater() Action { return s.repeater }

// ModifierHeld reports whether a modifier pair ("ctrl", "shift", "alt", "super") is held.
func (s *Snapshot) ModifierHeld(name string) bool {
	k, ok := keyNames[strings.ToLower(name)]
	if !ok {
		return false
	}
	return k.down(s.dev)
}

// WheelDelta returns this frame's scroll wheel movement.
func (s *Snapshot) WheelDelta() float32 { return s.wheel }

// Chars returns the text-input runes typed this frame.
func (s *Snapshot) Chars() []rune { return s.chars }

// MousePosition returns this frame's cursor position in viewport coordinates.
func (s *Snapshot) MousePosition() rl.Vector2 { return s.mouse }

// LeftClick reports a left-button press edge this frame.
func (s *Snapshot) LeftClick() bool { return s.leftDown && !s.leftWasDown }

// RightClick reports a right-button press edge this frame.
func (s *Snapshot) RightClick() bool { return s.rightDown && !s.rightWasDown }
