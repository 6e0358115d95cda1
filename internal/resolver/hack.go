package resolver

import (
	"time"

	"github.com/louisbranch/gridfall/internal/core/check"
	"github.com/louisbranch/gridfall/internal/core/dice"
	gferrors "github.com/louisbranch/gridfall/internal/errors"
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/world"
)

// catastrophicDifficultyMax is the highest challenge difficulty that turns
// a BLOCK-mode failure into a run-ending breach.
const catastrophicDifficultyMax = 2

// HackInput carries the player's rolls for a breach attempt against the
// node at the current position.
type HackInput struct {
	// RollValue is the phase-1 roll compared against the node's challenge
	// difficulty.
	RollValue int
	// FailDieRoll is the phase-2 fail-die roll. Nil means the follow-up
	// roll has not been made yet.
	FailDieRoll *int
}

// Hack resolves a breach attempt against the node at the current position.
//
// Resolution is two-phased: the first roll is checked against the node's
// challenge difficulty; on failure the caller must come back with a roll of
// the node's fail die, which partitions into a critical band (1-2) and a
// range band (3 through the die size). The node's fail modes decide whether
// a failed band leaves the node open or locks the whole circuit. No state
// is kept between the two calls: re-invoking with a different phase-1 roll
// is indistinguishable from a first attempt.
func Hack(state run.State, def world.Definition, input HackInput, now func() time.Time) (run.State, HackOutcome) {
	tr := state.Printer()

	circuit, ok := def.Circuit(state.Position.CircuitID)
	if !ok {
		return state, rejectHack(gferrors.CodeHackNodeNotFound, tr.T("reject.node_missing"))
	}
	node, ok := circuit.Node(state.Position.NodeID)
	if !ok {
		return state, rejectHack(gferrors.CodeHackNodeNotFound, tr.T("reject.node_missing"))
	}
	nodeState, ok := state.Node(node.ID)
	if !ok {
		return state, rejectHack(gferrors.CodeHackNodeNotFound, tr.T("reject.node_missing"))
	}
	if nodeState.Hacked {
		return state, rejectHack(gferrors.CodeHackNodeAlreadyHacked, tr.T("reject.node_hacked"))
	}
	if nodeState.Blocked {
		return state, rejectHack(gferrors.CodeHackNodeBlocked, tr.T("reject.node_blocked"))
	}
	if state.CircuitBlocked(circuit.ID) {
		return state, rejectHack(gferrors.CodeHackCircuitBlocked, tr.T("reject.circuit_blocked"))
	}
	if nodeState.Inaccessible {
		return state, rejectHack(gferrors.CodeHackNodeInaccessible, tr.T("reject.node_inaccessible"))
	}

	if check.MeetsDifficulty(input.RollValue, node.ChallengeDifficulty) {
		return resolveSuccess(state, def, circuit, node, now)
	}

	if input.FailDieRoll == nil {
		return state, HackOutcome{
			NeedsSecondRoll: true,
			FailDie:         node.FailDie,
			Code:            gferrors.CodeHackNeedsSecondRoll,
			Message:         tr.T("hack.needs_second_roll"),
		}
	}

	band := dice.FailBand(*input.FailDieRoll, node.FailDie)
	if band == dice.BandNone {
		// Out-of-range fail-die rolls are malformed input, not gameplay:
		// no attempt is consumed.
		return state, rejectHack(gferrors.CodeHackFailRollOutOfRange, tr.T("reject.fail_roll_invalid"))
	}

	mode := node.RangeFailMode
	severity := run.SeverityWarn
	warnKey := "hack.warn_range"
	if band == dice.BandCritical {
		mode = node.CriticalFailMode
		severity = run.SeverityTrace
		warnKey = "hack.warn_critical"
	}

	// The node's custom range-failure message overrides the stock text for
	// range-band failures only.
	custom := ""
	if band == dice.BandRange && node.RangeFailMessage != "" {
		custom = node.RangeFailMessage
	}

	if mode == world.FailModeBlock {
		return resolveBlock(state, circuit, node, band == dice.BandCritical, custom, now)
	}

	message := custom
	if message == "" {
		message = tr.T(warnKey)
	}
	return resolveWarn(state, node, severity, message, now)
}

func rejectHack(code gferrors.Code, message string) HackOutcome {
	return HackOutcome{Rejected: true, Code: code, Message: message}
}

func resolveSuccess(state run.State, def world.Definition, circuit world.Circuit, node world.Node, now func() time.Time) (run.State, HackOutcome) {
	tr := state.Printer()
	next := state.Clone()

	nodeState := next.Nodes[node.ID]
	nodeState.Hacked = true
	nodeState.Discovered = true
	nodeState.Attempts++
	nodeState.LastResult = run.ResultSuccess
	next.Nodes[node.ID] = nodeState

	if next.LastHacked == nil {
		next.LastHacked = map[string]string{}
	}
	next.LastHacked[circuit.ID] = node.ID

	next.Append(run.EventNodeHacked, tr.T("hack.success"), run.NodeHackedPayload{
		CircuitID: circuit.ID,
		NodeID:    node.ID,
	}, now)

	outcome := HackOutcome{Success: true, Message: tr.T("hack.success")}

	if !next.CircuitCompleted(circuit.ID) && circuitComplete(next, circuit) {
		if next.CompletedCircuits == nil {
			next.CompletedCircuits = map[string]bool{}
		}
		next.CompletedCircuits[circuit.ID] = true
		outcome.CircuitCompleted = true
		outcome.Message = tr.T("hack.circuit_completed")
		next.Append(run.EventCircuitCompleted, tr.T("hack.circuit_completed"), run.CircuitCompletedPayload{
			CircuitID: circuit.ID,
		}, now)

		if runComplete(next, def) {
			outcome.RunCompleted = true
			outcome.Message = tr.T("hack.run_completed")
			next.Append(run.EventRunCompleted, tr.T("hack.run_completed"), nil, now)
		}
	}

	return next, outcome
}

// circuitComplete reports completion: the designated final node hacked when
// one exists, otherwise every node in the circuit hacked.
func circuitComplete(state run.State, circuit world.Circuit) bool {
	if final, ok := circuit.FinalNode(); ok {
		return state.Nodes[final.ID].Hacked
	}
	for _, node := range circuit.Nodes {
		if !state.Nodes[node.ID].Hacked {
			return false
		}
	}
	return true
}

func runComplete(state run.State, def world.Definition) bool {
	for _, circuit := range def.Circuits {
		if !state.CircuitCompleted(circuit.ID) {
			return false
		}
	}
	return true
}

func resolveWarn(state run.State, node world.Node, severity run.Severity, message string, now func() time.Time) (run.State, HackOutcome) {
	next := state.Clone()

	nodeState := next.Nodes[node.ID]
	nodeState.Attempts++
	nodeState.LastResult = run.ResultFail
	next.Nodes[node.ID] = nodeState

	next.AddWarning(severity, node.ID, message, now)

	return next, HackOutcome{Message: message}
}

func resolveBlock(state run.State, circuit world.Circuit, node world.Node, critical bool, custom string, now func() time.Time) (run.State, HackOutcome) {
	tr := state.Printer()
	next := state.Clone()

	nodeState := next.Nodes[node.ID]
	nodeState.Attempts++
	nodeState.LastResult = run.ResultFail
	nodeState.Blocked = true
	next.Nodes[node.ID] = nodeState

	if next.BlockedCircuits == nil {
		next.BlockedCircuits = map[string]bool{}
	}
	next.BlockedCircuits[circuit.ID] = true

	outcome := HackOutcome{
		Blocked:        true,
		CircuitBlocked: true,
		Message:        tr.T("hack.block"),
	}
	if custom != "" {
		outcome.Message = custom
	}

	// Blowing a maximally-sensitive target ends the whole run.
	if node.ChallengeDifficulty <= catastrophicDifficultyMax {
		next.GameOver = true
		outcome.GameOver = true
		outcome.Message = tr.T("hack.game_over")
	}

	next.Append(run.EventNodeBlocked, outcome.Message, run.NodeBlockedPayload{
		CircuitID: circuit.ID,
		NodeID:    node.ID,
		Critical:  critical,
	}, now)
	next.Append(run.EventCircuitBlocked, tr.T("reject.circuit_blocked"), run.CircuitBlockedPayload{
		CircuitID: circuit.ID,
	}, now)

	return next, outcome
}
