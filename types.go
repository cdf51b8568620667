package doublestate

import "log/slog"

// StateID is a unique identifier for a state
type StateID string

// Kind classifies how a state is left
type Kind int

const (
	// KindLinear has exactly one successor, entered automatically on the next tick
	KindLinear Kind = iota + 1
	// KindArbitrary has one or more successors, entered only on request
	KindArbitrary
	// KindTerminal has no successors
	KindTerminal
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindArbitrary:
		return "arbitrary"
	case KindTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Steady reports whether a machine resting in a state of this kind stays there
// until something requests a transition.
func (k Kind) Steady() bool {
	return k == KindArbitrary || k == KindTerminal
}

// Logger is the default logger used when none is provided
var Logger = slog.Default()
