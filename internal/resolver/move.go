package resolver

import (
	gferrors "github.com/louisbranch/gridfall/internal/errors"
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/world"
)

// Move repositions the player onto an adjacent node. Movement is direct-link
// only: a discovered, accessible link must join the current and target
// nodes.
//
// Moving to an already-hacked node is a retreat and is always allowed once
// the link is known. Moving to an unhacked node is an advance, which
// additionally requires the current node to be hacked and the target to be
// discovered. Successful moves change only the position; they record no
// timeline event.
func Move(state run.State, def world.Definition, targetNodeID string) (run.State, MoveOutcome) {
	tr := state.Printer()

	if state.CircuitBlocked(state.Position.CircuitID) {
		return state, rejectMove(gferrors.CodeMoveCircuitBlocked, tr.T("reject.circuit_blocked"))
	}
	if targetNodeID == state.Position.NodeID {
		return state, rejectMove(gferrors.CodeMoveSamePosition, tr.T("move.same"))
	}

	circuit, ok := def.Circuit(state.Position.CircuitID)
	if !ok {
		return state, rejectMove(gferrors.CodeMoveNodeNotFound, tr.T("reject.node_missing"))
	}
	if _, ok := circuit.Node(targetNodeID); !ok {
		return state, rejectMove(gferrors.CodeMoveNodeNotFound, tr.T("reject.node_missing"))
	}
	targetState, ok := state.Node(targetNodeID)
	if !ok {
		return state, rejectMove(gferrors.CodeMoveNodeNotFound, tr.T("reject.node_missing"))
	}
	if targetState.Inaccessible {
		return state, rejectMove(gferrors.CodeMoveNodeInaccessible, tr.T("reject.node_inaccessible"))
	}
	if targetState.Blocked {
		return state, rejectMove(gferrors.CodeMoveNodeBlocked, tr.T("move.node_blocked"))
	}

	link, ok := circuit.LinkBetween(state.Position.NodeID, targetNodeID)
	if !ok {
		return state, rejectMove(gferrors.CodeMoveNoLink, tr.T("move.no_link"))
	}
	linkState := state.Links[link.ID]
	if !linkState.Discovered || linkState.Inaccessible {
		return state, rejectMove(gferrors.CodeMoveNoLink, tr.T("move.no_link"))
	}

	if !targetState.Hacked {
		// Advancing into unhacked territory is gated on a secured
		// foothold; retreating to conquered ground never is.
		currentState, ok := state.Node(state.Position.NodeID)
		if !ok || !currentState.Hacked {
			return state, rejectMove(gferrors.CodeMoveAdvanceUnhacked, tr.T("move.advance_unhacked"))
		}
		if !targetState.Discovered {
			return state, rejectMove(gferrors.CodeMoveTargetUndiscovered, tr.T("move.target_undiscovered"))
		}
	}

	next := state.Clone()
	next.Position = run.Position{CircuitID: circuit.ID, NodeID: targetNodeID}

	return next, MoveOutcome{
		Moved:    true,
		Position: next.Position,
		Message:  tr.T("move.ok"),
	}
}

func rejectMove(code gferrors.Code, message string) MoveOutcome {
	return MoveOutcome{Rejected: true, Code: code, Message: message}
}
