package placement

import (
	"github.com/google/uuid"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Result is the outcome of one strategy query. Created fresh per raycast; a miss is a
// valid result (Hit false), not an error.
type Result struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Hit      bool
	Distance float32
}

// Miss returns the sentinel no-hit result.
func Miss() Result {
	return Result{Normal: rl.Vector3{Y: 1}}
}

// ExclusionSet is the set of node handles a raycast must ignore, typically the preview
// or the objects being transformed plus all their collision-bearing descendants.
type ExclusionSet map[uuid.UUID]struct{}

// Strategy turns a camera ray into a candidate world point and surface normal.
type Strategy interface {
	// CalculatePosition casts from origin along direction (assumed normalized) and
	// returns the closest accepted hit, or a miss.
	CalculatePosition(origin, direction rl.Vector3, exclude ExclusionSet) Result
	// Name identifies the strategy for HUD display and logging.
	Name() string
}

// Manager holds the ordered strategy list and which one is active. Cycling swaps the
// active strategy in place; it never touches any session state.
type Manager struct {
	strategies []Strategy
	active     int
}

// NewManager returns a manager over the given strategies. The first is active.
func NewManager(strategies ...Strategy) *Manager {
	return &Manager{strategies: strategies}
}

// Active returns the current strategy, or nil when the manager holds none.
func (m *Manager) Active() Strategy {
	if len(m.strategies) == 0 {
		return nil
	}
	return m.strategies[m.active]
}

// Cycle advances to the next strategy, wrapping at the end.
func (m *Manager) Cycle() {
	if len(m.strategies) == 0 {
		return
	}
	m.active = (m.active + 1) % len(m.strategies)
}
