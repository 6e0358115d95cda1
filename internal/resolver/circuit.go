package resolver

import (
	"time"

	gferrors "github.com/louisbranch/gridfall/internal/errors"
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/world"
)

// SwitchCircuit repositions the player onto another circuit. Arrival
// prefers the circuit's last hacked node when it is still valid, falling
// back to the circuit's first entry node. The arrival node is forced
// discovered.
func SwitchCircuit(state run.State, def world.Definition, targetCircuitID string, now func() time.Time) (run.State, SwitchOutcome) {
	tr := state.Printer()

	circuit, ok := def.Circuit(targetCircuitID)
	if !ok {
		return state, rejectSwitch(gferrors.CodeSwitchCircuitNotFound, tr.T("switch.missing"))
	}
	if targetCircuitID == state.Position.CircuitID {
		return state, rejectSwitch(gferrors.CodeSwitchSameCircuit, tr.T("switch.same"))
	}
	if state.CircuitBlocked(targetCircuitID) {
		return state, rejectSwitch(gferrors.CodeSwitchCircuitBlocked, tr.T("switch.blocked"))
	}

	arrivalID, ok := arrivalNode(state, circuit)
	if !ok {
		return state, rejectSwitch(gferrors.CodeSwitchNoEntryNode, tr.T("switch.no_entry"))
	}

	previous := state.Position.CircuitID

	next := state.Clone()
	next.Position = run.Position{CircuitID: circuit.ID, NodeID: arrivalID}

	nodeState := next.Nodes[arrivalID]
	nodeState.Discovered = true
	next.Nodes[arrivalID] = nodeState

	next.Append(run.EventCircuitChanged, tr.T("switch.ok"), run.CircuitChangedPayload{
		PreviousCircuitID: previous,
		CircuitID:         circuit.ID,
	}, now)

	return next, SwitchOutcome{
		Switched:          true,
		Position:          next.Position,
		PreviousCircuitID: previous,
		Message:           tr.T("switch.ok"),
	}
}

// arrivalNode picks where the player lands on the target circuit: the
// last hacked node when it still exists, is hacked, and is neither blocked
// nor inaccessible; otherwise the circuit's first entry node.
func arrivalNode(state run.State, circuit world.Circuit) (string, bool) {
	if lastID, ok := state.LastHacked[circuit.ID]; ok {
		if _, exists := circuit.Node(lastID); exists {
			nodeState, hasState := state.Node(lastID)
			if hasState && nodeState.Hacked && !nodeState.Blocked && !nodeState.Inaccessible {
				return lastID, true
			}
		}
	}

	entry, ok := circuit.EntryNode()
	if !ok {
		return "", false
	}
	return entry.ID, true
}

func rejectSwitch(code gferrors.Code, message string) SwitchOutcome {
	return SwitchOutcome{Rejected: true, Code: code, Message: message}
}
