package transform

// Modifiers is the modifier set sampled when a step is applied. Fine and Large scale
// the step, Reverse flips its sign. All manipulation axes share this calculator.
type Modifiers struct {
	Reverse bool
	Large   bool
	Fine    bool
}

const (
	largeFactor = 5
	fineFactor  = 0.1
)

// Step returns base adjusted by the modifier set. Fine and Large compose if both are
// held (a half-accident, but harmless: 0.5x), Reverse is applied last.
func Step(base float32, mods Modifiers) float32 {
	step := base
	if mods.Fine {
		step *= fineFactor
	}
	if mods.Large {
		step *= largeFactor
	}
	if mods.Reverse {
		step = -step
	}
	return step
}
