// Package scenario loads and replays scripted action sequences against a
// world definition. Scripts are Lua files built from a small DSL of step
// functions; replaying one drives the rules engine exactly as an
// interactive caller would, which makes scenarios useful both for the sim
// CLI and for end-to-end tests.
package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

// Step kinds produced by the scenario DSL.
const (
	// StepHack attempts a breach with an explicit phase-1 roll.
	StepHack = "hack"
	// StepFailDie supplies the phase-2 fail-die roll for a pending breach.
	StepFailDie = "fail_die"
	// StepHackAuto attempts a breach with engine-rolled dice, including the
	// fail die when one is demanded.
	StepHackAuto = "hack_auto"
	// StepMove moves to an adjacent node.
	StepMove = "move"
	// StepDiscover reveals hidden topology at the current node.
	StepDiscover = "discover"
	// StepSwitch switches to another circuit.
	StepSwitch = "switch_circuit"
	// StepExpect asserts on the previous step's result: "ok", "rejected",
	// or "game_over".
	StepExpect = "expect"
)

// Step is one scripted action.
type Step struct {
	Kind   string
	Roll   int
	Target string
}

// Scenario is an ordered list of scripted actions.
type Scenario struct {
	Name  string
	Steps []Step
}

// Load reads and executes a Lua scenario script from a file.
func Load(path string) (*Scenario, error) {
	sc := &Scenario{}
	state := newState(sc)

	if err := lua.DoFile(state, path); err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", path, err)
	}
	if strings.TrimSpace(sc.Name) == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// LoadString executes a Lua scenario script from source. Used by tests.
func LoadString(name, source string) (*Scenario, error) {
	sc := &Scenario{Name: name}
	state := newState(sc)

	if err := lua.DoString(state, source); err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", name, err)
	}
	return sc, nil
}

// newState builds a Lua state with the scenario DSL registered. Each DSL
// function appends a step to the scenario as the script executes.
func newState(sc *Scenario) *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)

	state.Register("scenario", func(l *lua.State) int {
		name, ok := l.ToString(1)
		if !ok {
			lua.Errorf(l, "scenario: name must be a string")
		}
		sc.Name = name
		return 0
	})

	state.Register(StepHack, func(l *lua.State) int {
		roll, ok := l.ToInteger(1)
		if !ok {
			lua.Errorf(l, "hack: roll must be an integer")
		}
		sc.Steps = append(sc.Steps, Step{Kind: StepHack, Roll: roll})
		return 0
	})

	state.Register(StepFailDie, func(l *lua.State) int {
		roll, ok := l.ToInteger(1)
		if !ok {
			lua.Errorf(l, "fail_die: roll must be an integer")
		}
		sc.Steps = append(sc.Steps, Step{Kind: StepFailDie, Roll: roll})
		return 0
	})

	state.Register(StepHackAuto, func(l *lua.State) int {
		sc.Steps = append(sc.Steps, Step{Kind: StepHackAuto})
		return 0
	})

	state.Register(StepMove, func(l *lua.State) int {
		target, ok := l.ToString(1)
		if !ok {
			lua.Errorf(l, "move: target node id must be a string")
		}
		sc.Steps = append(sc.Steps, Step{Kind: StepMove, Target: target})
		return 0
	})

	state.Register(StepDiscover, func(l *lua.State) int {
		sc.Steps = append(sc.Steps, Step{Kind: StepDiscover})
		return 0
	})

	state.Register(StepSwitch, func(l *lua.State) int {
		target, ok := l.ToString(1)
		if !ok {
			lua.Errorf(l, "switch_circuit: target circuit id must be a string")
		}
		sc.Steps = append(sc.Steps, Step{Kind: StepSwitch, Target: target})
		return 0
	})

	state.Register(StepExpect, func(l *lua.State) int {
		want, ok := l.ToString(1)
		if !ok {
			lua.Errorf(l, "expect: expectation must be a string")
		}
		sc.Steps = append(sc.Steps, Step{Kind: StepExpect, Target: want})
		return 0
	})

	return state
}
