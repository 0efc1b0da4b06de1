package session

import "fmt"

// Mode is the top-level engine mode.
type Mode int

const (
	Idle Mode = iota
	Placement
	Transform
)

func (m Mode) String() string {
	switch m {
	case Placement:
		return "placement"
	case Transform:
		return "transform"
	}
	return "idle"
}

// ModeMachine guards top-level mode transitions. From Idle either working mode may be
// entered; from a non-Idle mode only Idle is permitted — a caller wanting to switch
// working modes must exit explicitly first. Re-entering the current mode is rejected.
// Transitions are synchronous; the guard exists so two sessions can never mutate the
// same transform state concurrently.
type ModeMachine struct {
	mode Mode
}

// Mode returns the current mode.
func (m *ModeMachine) Mode() Mode { return m.mode }

// Enter attempts a transition and returns an error when the guard rejects it.
func (m *ModeMachine) Enter(target Mode) error {
	if target == m.mode {
		return fmt.Errorf("already in %s mode", m.mode)
	}
	if m.mode != Idle && target != Idle {
		return fmt.Errorf("cannot enter %s while %s is active; exit first", target, m.mode)
	}
	m.mode = target
	return nil
}
