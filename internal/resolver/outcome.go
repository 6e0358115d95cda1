package resolver

import (
	gferrors "github.com/louisbranch/gridfall/internal/errors"
	"github.com/louisbranch/gridfall/internal/run"
)

// HackOutcome describes the result of a breach attempt.
type HackOutcome struct {
	// Success is true when the node was hacked.
	Success bool
	// NeedsSecondRoll is true when a phase-1 failure awaits the fail-die
	// roll. FailDie carries the die size the caller must roll.
	NeedsSecondRoll bool
	FailDie         int
	// Blocked is true when this attempt locked the node permanently.
	Blocked bool
	// CircuitBlocked is true when this attempt locked the whole circuit.
	CircuitBlocked bool
	// CircuitCompleted is true when this attempt completed the circuit.
	CircuitCompleted bool
	// RunCompleted is true when this attempt completed every circuit.
	RunCompleted bool
	// GameOver is true when a catastrophic breach ended the run.
	GameOver bool
	// Rejected is true when a precondition or input check failed and the
	// state was returned unchanged.
	Rejected bool
	Code     gferrors.Code
	Message  string
}

// DiscoverOutcome describes the result of a discovery action.
type DiscoverOutcome struct {
	// Found is true when at least one link or node was revealed.
	Found    bool
	LinkIDs  []string
	NodeIDs  []string
	Rejected bool
	Code     gferrors.Code
	Message  string
}

// MoveOutcome describes the result of a movement action.
type MoveOutcome struct {
	Moved    bool
	Position run.Position
	Rejected bool
	Code     gferrors.Code
	Message  string
}

// SwitchOutcome describes the result of a circuit switch.
type SwitchOutcome struct {
	Switched          bool
	Position          run.Position
	PreviousCircuitID string
	Rejected          bool
	Code              gferrors.Code
	Message           string
}
