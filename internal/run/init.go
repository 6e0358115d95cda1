package run

import (
	"errors"
	"time"

	"github.com/louisbranch/gridfall/internal/world"
)

// ErrNoEntryNode indicates the first circuit has no entry node to place
// the player on.
var ErrNoEntryNode = errors.New("first circuit has no entry node")

// NewState builds the initial execution state for a validated world.
//
// Every node starts discovered when the world marks it visible by default;
// every link starts discovered unless hidden. The player is placed on the
// first circuit's first entry node, which is forced discovered regardless
// of its default. A run.started event captures the initial snapshot.
func NewState(def world.Definition, locale string, now func() time.Time) (State, error) {
	if len(def.Circuits) == 0 {
		return State{}, ErrNoEntryNode
	}

	first := def.Circuits[0]
	entry, ok := first.EntryNode()
	if !ok {
		return State{}, ErrNoEntryNode
	}

	state := State{
		Locale:            locale,
		Nodes:             map[string]NodeState{},
		Links:             map[string]LinkState{},
		LastHacked:        map[string]string{},
		BlockedCircuits:   map[string]bool{},
		CompletedCircuits: map[string]bool{},
	}

	for _, circuit := range def.Circuits {
		for _, node := range circuit.Nodes {
			state.Nodes[node.ID] = NodeState{
				Discovered: node.VisibleByDefault,
				LastResult: ResultNone,
			}
		}
		for _, link := range circuit.Links {
			state.Links[link.ID] = LinkState{
				Discovered: !link.Hidden,
			}
		}
	}

	state.Position = Position{CircuitID: first.ID, NodeID: entry.ID}

	start := state.Nodes[entry.ID]
	start.Discovered = true
	state.Nodes[entry.ID] = start

	state.Append(EventRunStarted, state.Printer().T("run.started"), nil, now)

	return state, nil
}
