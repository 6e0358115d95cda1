package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/louisbranch/gridfall/internal/core/dice"
	"github.com/louisbranch/gridfall/internal/resolver"
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/world"
)

// breachDieSides is the die rolled for automatic phase-1 breach rolls.
const breachDieSides = 20

// StepResult records how one scripted step resolved.
type StepResult struct {
	Step     Step
	Rolls    []int
	Message  string
	Rejected bool
	GameOver bool
}

// Runner replays scenario steps against a world, carrying the evolving run
// state. Automatic rolls draw from a seeded stream, so a runner with the
// same world, scenario, and seed always produces the same transcript.
type Runner struct {
	def      world.Definition
	state    run.State
	rng      *rand.Rand
	now      func() time.Time
	lastRoll *int
	lastStep *StepResult
}

// NewRunner initializes a runner with a fresh run state.
func NewRunner(def world.Definition, locale string, seed int64, now func() time.Time) (*Runner, error) {
	state, err := run.NewState(def, locale, now)
	if err != nil {
		return nil, fmt.Errorf("initialize run: %w", err)
	}
	return &Runner{
		def:   def,
		state: state,
		rng:   rand.New(rand.NewSource(seed)),
		now:   now,
	}, nil
}

// State returns the current run state.
func (r *Runner) State() run.State {
	return r.state
}

// Run applies every step in order and returns the transcript.
func (r *Runner) Run(sc *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		result, err := r.Apply(step)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Kind, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Apply resolves one step against the current state.
func (r *Runner) Apply(step Step) (StepResult, error) {
	result, err := r.apply(step)
	if err == nil && step.Kind != StepExpect {
		last := result
		r.lastStep = &last
	}
	return result, err
}

func (r *Runner) apply(step Step) (StepResult, error) {
	switch step.Kind {
	case StepHack:
		return r.applyHack(step, step.Roll, nil), nil

	case StepFailDie:
		if r.lastRoll == nil {
			return StepResult{}, fmt.Errorf("no pending breach awaits a fail die")
		}
		roll := step.Roll
		return r.applyHack(step, *r.lastRoll, &roll), nil

	case StepHackAuto:
		roll := r.roll(breachDieSides)
		result := r.applyHack(step, roll, nil)
		if r.lastRoll != nil {
			// The breach demanded a fail die; roll it from the same stream.
			failRoll := r.roll(r.pendingFailDie())
			return r.applyHack(step, roll, &failRoll), nil
		}
		return result, nil

	case StepMove:
		next, outcome := resolver.Move(r.state, r.def, step.Target)
		r.state = next
		return StepResult{Step: step, Message: outcome.Message, Rejected: outcome.Rejected}, nil

	case StepDiscover:
		next, outcome := resolver.Discover(r.state, r.def, r.now)
		r.state = next
		return StepResult{Step: step, Message: outcome.Message, Rejected: outcome.Rejected}, nil

	case StepSwitch:
		next, outcome := resolver.SwitchCircuit(r.state, r.def, step.Target, r.now)
		r.state = next
		return StepResult{Step: step, Message: outcome.Message, Rejected: outcome.Rejected}, nil

	case StepExpect:
		return r.applyExpect(step)

	default:
		return StepResult{}, fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) applyHack(step Step, roll int, failRoll *int) StepResult {
	input := resolver.HackInput{RollValue: roll, FailDieRoll: failRoll}
	next, outcome := resolver.Hack(r.state, r.def, input, r.now)
	r.state = next

	if outcome.NeedsSecondRoll {
		pending := roll
		r.lastRoll = &pending
	} else if !outcome.Rejected {
		r.lastRoll = nil
	}

	rolls := []int{roll}
	if failRoll != nil {
		rolls = append(rolls, *failRoll)
	}
	return StepResult{
		Step:     step,
		Rolls:    rolls,
		Message:  outcome.Message,
		Rejected: outcome.Rejected,
		GameOver: outcome.GameOver,
	}
}

// applyExpect asserts on the most recent action's result. A failed
// expectation aborts the scenario with an error instead of recording a
// rejected step.
func (r *Runner) applyExpect(step Step) (StepResult, error) {
	if r.lastStep == nil {
		return StepResult{}, fmt.Errorf("expect %q: no step has run yet", step.Target)
	}
	prev := *r.lastStep

	var ok bool
	switch step.Target {
	case "ok":
		ok = !prev.Rejected
	case "rejected":
		ok = prev.Rejected
	case "game_over":
		ok = prev.GameOver
	default:
		return StepResult{}, fmt.Errorf("expect %q: unknown expectation", step.Target)
	}
	if !ok {
		return StepResult{}, fmt.Errorf("expect %q: previous %s step resolved %q",
			step.Target, prev.Step.Kind, prev.Message)
	}
	return StepResult{Step: step, Message: prev.Message}, nil
}

// pendingFailDie looks up the fail die of the node awaiting a second roll.
func (r *Runner) pendingFailDie() int {
	if circuit, ok := r.def.Circuit(r.state.Position.CircuitID); ok {
		if node, ok := circuit.Node(r.state.Position.NodeID); ok {
			return node.FailDie
		}
	}
	return world.DefaultFailDie
}

func (r *Runner) roll(sides int) int {
	result, err := dice.RollWithRng(r.rng, []dice.Spec{{Sides: sides, Count: 1}})
	if err != nil {
		// Unreachable: the dice spec is hardcoded and always valid.
		panic(err)
	}
	return result.Total
}
