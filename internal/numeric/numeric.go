// Package numeric implements Blender-style direct value entry: tap an adjust key to
// set context, type a number, confirm to override the axis's value exactly.
package numeric

import (
	"strconv"
	"time"
)

// ContextGrace is how long a fresh context waits for the first typed character. Once
// at least one character has been typed the deadline no longer applies; indefinite
// editing is allowed, including deleting back to empty and retyping.
const ContextGrace = 2 * time.Second

// Target is the axis/action receiving digits.
type Target int

const (
	NoTarget Target = iota
	RotateX
	RotateY
	RotateZ
	ScaleUniform
	MoveX
	MoveY
	MoveZ
	Height
)

func (t Target) String() string {
	switch t {
	case RotateX:
		return "rotate X"
	case RotateY:
		return "rotate Y"
	case RotateZ:
		return "rotate Z"
	case ScaleUniform:
		return "scale"
	case MoveX:
		return "move X"
	case MoveY:
		return "move Y"
	case MoveZ:
		return "move Z"
	case Height:
		return "height"
	}
	return "none"
}

// Prefix selects how the confirmed value combines with the axis's current value.
type Prefix int

const (
	RelativeAdd Prefix = iota
	RelativeSub
	Absolute
)

type phase int

const (
	phaseIdle phase = iota
	phaseContext // context set, not yet typed into
	phaseTyping  // at least one character in the buffer's history
)

// Engine is the numeric-entry state machine. It layers on the input snapshot: the
// command router feeds it taps (context) and typed characters each frame.
type Engine struct {
	phase       phase
	target      Target
	prefix      Prefix
	buffer      string
	decimalSeen bool
	deadline    time.Time
}

// New returns an idle engine.
func New() *Engine {
	return &Engine{}
}

// SetContext records which axis a future number applies to, without activating
// capture. A tap on a different action while typing cancels the entry in progress.
func (e *Engine) SetContext(t Target, now time.Time) {
	if e.phase != phaseIdle && e.target != t {
		e.reset()
	}
	if e.phase == phaseIdle || e.target != t {
		e.phase = phaseContext
		e.target = t
	}
	e.deadline = now.Add(ContextGrace)
}

// HandleTap processes a repeat tap of an action key. A tap on the same target while
// capture is active and the deadline has not passed confirms the entry; otherwise the
// tap just (re)sets context. Returns true when this tap confirmed.
func (e *Engine) HandleTap(t Target, now time.Time) bool {
	if e.phase == phaseTyping && e.target == t && now.Before(e.deadline) {
		return true
	}
	e.SetContext(t, now)
	return false
}

// TypeChars feeds this frame's typed characters. Digits activate capture when the
// context is fresh; prefix runes -, + and = may change the prefix mode at any time
// before confirmation. Unrecognized characters are ignored rather than cancelling.
func (e *Engine) TypeChars(chars []rune, now time.Time) {
	for _, c := range chars {
		e.typeChar(c, now)
	}
}

func (e *Engine) typeChar(c rune, now time.Time) {
	if e.phase == phaseIdle {
		return
	}
	if e.phase == phaseContext && now.After(e.deadline) {
		// Context went stale before the first keystroke.
		e.reset()
		return
	}
	switch {
	case c >= '0' && c <= '9':
		e.buffer += string(c)
		e.phase = phaseTyping
	case c == '.':
		if !e.decimalSeen {
			e.decimalSeen = true
			e.buffer += "."
			e.phase = phaseTyping
		}
	case c == '-':
		if e.prefix == RelativeSub {
			e.prefix = RelativeAdd
		} else {
			e.prefix = RelativeSub
		}
		e.phase = phaseTyping
	case c == '+':
		e.prefix = RelativeAdd
		e.phase = phaseTyping
	case c == '=':
		if e.prefix == Absolute {
			e.prefix = RelativeAdd
		} else {
			e.prefix = Absolute
		}
		e.phase = phaseTyping
	}
	if e.phase == phaseTyping {
		e.deadline = now.Add(ContextGrace)
	}
}

// Backspace deletes the last buffered character. Deleting back to empty keeps the
// entry active for retyping.
func (e *Engine) Backspace() {
	if e.phase != phaseTyping || e.buffer == "" {
		return
	}
	last := e.buffer[len(e.buffer)-1]
	e.buffer = e.buffer[:len(e.buffer)-1]
	if last == '.' {
		e.decimalSeen = false
	}
}

// Confirm parses the buffer and returns the typed value with its prefix and target.
// An empty or unparsable buffer confirms nothing and leaves the engine idle.
func (e *Engine) Confirm() (value float32, prefix Prefix, target Target, ok bool) {
	defer e.reset()
	if e.phase != phaseTyping || e.buffer == "" {
		return 0, RelativeAdd, NoTarget, false
	}
	v, err := strconv.ParseFloat(e.buffer, 32)
	if err != nil {
		return 0, RelativeAdd, NoTarget, false
	}
	return float32(v), e.prefix, e.target, true
}

// Cancel discards any entry in progress.
func (e *Engine) Cancel() {
	e.reset()
}

// Apply combines a confirmed value with the axis's current value.
func Apply(current, value float32, prefix Prefix) float32 {
	switch prefix {
	case Absolute:
		return value
	case RelativeSub:
		return current - value
	default:
		return current + value
	}
}

// Capturing reports whether typed characters are being consumed.
func (e *Engine) Capturing() bool { return e.phase == phaseTyping }

// ContextSet reports whether a context is waiting for its first character.
func (e *Engine) ContextSet() bool { return e.phase == phaseContext }

// Target returns the axis/action currently receiving digits.
func (e *Engine) Target() Target { return e.target }

// Buffer returns the typed text for HUD display.
func (e *Engine) Buffer() string { return e.buffer }

// PrefixMode returns the current prefix mode for HUD display.
func (e *Engine) PrefixMode() Prefix { return e.prefix }

func (e *Engine) reset() {
	e.phase = phaseIdle
	e.target = NoTarget
	e.prefix = RelativeAdd
	e.buffer = ""
	e.decimalSeen = false
	e.deadline = time.Time{}
}
