// Package timeline provides read-only aggregation and export of run
// timelines: per-circuit progress summaries, a derived status, and
// plain-text, Markdown, and JSON renderings. Nothing in this package
// mutates state; it exists for operator visibility and for reconstructing
// a point-in-time view from a stored snapshot.
package timeline

import (
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/world"
)

// CircuitStatus is the derived progress status of one circuit.
type CircuitStatus string

const (
	// StatusNotStarted means no node on the circuit has been hacked.
	StatusNotStarted CircuitStatus = "NOT_STARTED"
	// StatusInProgress means at least one node has been hacked.
	StatusInProgress CircuitStatus = "IN_PROGRESS"
	// StatusAdvanced means at least half the circuit's nodes are hacked.
	StatusAdvanced CircuitStatus = "ADVANCED"
	// StatusCompleted means the circuit's completion condition was met.
	StatusCompleted CircuitStatus = "COMPLETED"
	// StatusBlocked means the circuit is under permanent lockout.
	StatusBlocked CircuitStatus = "BLOCKED"
)

// CircuitSummary aggregates per-circuit counts from a run state.
type CircuitSummary struct {
	CircuitID  string        `json:"circuitId"`
	Name       string        `json:"name"`
	Nodes      int           `json:"nodes"`
	Hacked     int           `json:"hacked"`
	Blocked    int           `json:"blocked"`
	Discovered int           `json:"discovered"`
	Status     CircuitStatus `json:"status"`
}

// Summary aggregates a whole run.
type Summary struct {
	Circuits        []CircuitSummary `json:"circuits"`
	TotalNodes      int              `json:"totalNodes"`
	TotalHacked     int              `json:"totalHacked"`
	TotalBlocked    int              `json:"totalBlocked"`
	TotalDiscovered int              `json:"totalDiscovered"`
	Completed       bool             `json:"completed"`
	GameOver        bool             `json:"gameOver"`
}

// Summarize computes the audit summary for a run state against its world.
func Summarize(state run.State, def world.Definition) Summary {
	summary := Summary{GameOver: state.GameOver, Completed: true}

	for _, circuit := range def.Circuits {
		cs := CircuitSummary{
			CircuitID: circuit.ID,
			Name:      circuit.Name,
			Nodes:     len(circuit.Nodes),
		}
		for _, node := range circuit.Nodes {
			nodeState := state.Nodes[node.ID]
			if nodeState.Hacked {
				cs.Hacked++
			}
			if nodeState.Blocked {
				cs.Blocked++
			}
			if nodeState.Discovered {
				cs.Discovered++
			}
		}
		cs.Status = circuitStatus(state, circuit.ID, cs)

		summary.Circuits = append(summary.Circuits, cs)
		summary.TotalNodes += cs.Nodes
		summary.TotalHacked += cs.Hacked
		summary.TotalBlocked += cs.Blocked
		summary.TotalDiscovered += cs.Discovered
		if cs.Status != StatusCompleted {
			summary.Completed = false
		}
	}

	return summary
}

// SummarizeSnapshot computes the audit summary for a stored point-in-time
// snapshot, allowing replay views without the full timeline.
func SummarizeSnapshot(snap run.Snapshot, def world.Definition) Summary {
	return Summarize(run.State{
		Position:          snap.Position,
		Nodes:             snap.Nodes,
		Links:             snap.Links,
		BlockedCircuits:   snap.BlockedCircuits,
		CompletedCircuits: snap.CompletedCircuits,
	}, def)
}

func circuitStatus(state run.State, circuitID string, cs CircuitSummary) CircuitStatus {
	switch {
	case state.CircuitBlocked(circuitID):
		return StatusBlocked
	case state.CircuitCompleted(circuitID):
		return StatusCompleted
	case cs.Hacked == 0:
		return StatusNotStarted
	case cs.Hacked*2 >= cs.Nodes:
		return StatusAdvanced
	default:
		return StatusInProgress
	}
}
