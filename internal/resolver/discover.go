package resolver

import (
	"time"

	gferrors "github.com/louisbranch/gridfall/internal/errors"
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/world"
)

// Discover reveals hidden links touching the current node, plus any
// undiscovered nodes on their far ends. Discovery never requires the
// current node to be hacked; it is refused only when the circuit is under
// lockout or the position points at an unknown circuit.
func Discover(state run.State, def world.Definition, now func() time.Time) (run.State, DiscoverOutcome) {
	tr := state.Printer()

	if state.CircuitBlocked(state.Position.CircuitID) {
		return state, DiscoverOutcome{
			Rejected: true,
			Code:     gferrors.CodeDiscoverCircuitBlocked,
			Message:  tr.T("reject.circuit_blocked"),
		}
	}

	circuit, ok := def.Circuit(state.Position.CircuitID)
	if !ok {
		return state, DiscoverOutcome{
			Rejected: true,
			Code:     gferrors.CodeDiscoverNodeNotFound,
			Message:  tr.T("reject.node_missing"),
		}
	}

	var linkIDs, nodeIDs []string
	for _, link := range circuit.LinksTouching(state.Position.NodeID) {
		if !link.Hidden {
			continue
		}
		if state.Links[link.ID].Discovered {
			continue
		}
		linkIDs = append(linkIDs, link.ID)

		farID := link.FarEnd(state.Position.NodeID)
		if farState, ok := state.Node(farID); ok && !farState.Discovered {
			nodeIDs = append(nodeIDs, farID)
		}
	}

	if len(linkIDs) == 0 {
		return state, DiscoverOutcome{Message: tr.T("discover.nothing")}
	}

	next := state.Clone()
	for _, id := range linkIDs {
		linkState := next.Links[id]
		linkState.Discovered = true
		next.Links[id] = linkState
	}
	for _, id := range nodeIDs {
		nodeState := next.Nodes[id]
		nodeState.Discovered = true
		next.Nodes[id] = nodeState
	}

	next.Append(run.EventLinksDiscovered, tr.T("discover.found"), run.LinksDiscoveredPayload{
		LinkIDs: linkIDs,
		NodeIDs: nodeIDs,
	}, now)

	return next, DiscoverOutcome{
		Found:   true,
		LinkIDs: linkIDs,
		NodeIDs: nodeIDs,
		Message: tr.T("discover.found"),
	}
}
