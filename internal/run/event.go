package run

import (
	"encoding/json"
	"time"
)

// EventType identifies the type of a timeline event.
type EventType string

const (
	// EventRunStarted records the creation of a run.
	EventRunStarted EventType = "run.started"
	// EventNodeHacked records a successful breach of a node.
	EventNodeHacked EventType = "node.hacked"
	// EventNodeBlocked records a permanent node lockout.
	EventNodeBlocked EventType = "node.blocked"
	// EventCircuitBlocked records a circuit-wide lockout.
	EventCircuitBlocked EventType = "circuit.blocked"
	// EventCircuitCompleted records the first completion of a circuit.
	EventCircuitCompleted EventType = "circuit.completed"
	// EventRunCompleted records completion of every circuit in the run.
	EventRunCompleted EventType = "run.completed"
	// EventLinksDiscovered records links and nodes revealed by discovery.
	EventLinksDiscovered EventType = "links.discovered"
	// EventCircuitChanged records the player switching circuits.
	EventCircuitChanged EventType = "circuit.changed"
)

// Event is an immutable entry in the run timeline. Every event carries a
// snapshot of the state it produced so a point-in-time view can be
// reconstructed without replaying.
type Event struct {
	// Seq is the event sequence number within the run (starts at 1).
	Seq uint64 `json:"seq"`
	// Type identifies the kind of event.
	Type EventType `json:"type"`
	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`
	// Message is the player-facing description recorded with the event.
	Message string `json:"message"`
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON json.RawMessage `json:"payload,omitempty"`
	// Snapshot captures the state the event produced.
	Snapshot Snapshot `json:"snapshot"`
}

// NodeHackedPayload is the payload for node.hacked events.
type NodeHackedPayload struct {
	CircuitID string `json:"circuitId"`
	NodeID    string `json:"nodeId"`
}

// NodeBlockedPayload is the payload for node.blocked events.
type NodeBlockedPayload struct {
	CircuitID string `json:"circuitId"`
	NodeID    string `json:"nodeId"`
	Critical  bool   `json:"critical"`
}

// CircuitBlockedPayload is the payload for circuit.blocked events.
type CircuitBlockedPayload struct {
	CircuitID string `json:"circuitId"`
}

// CircuitCompletedPayload is the payload for circuit.completed events.
type CircuitCompletedPayload struct {
	CircuitID string `json:"circuitId"`
}

// LinksDiscoveredPayload is the payload for links.discovered events.
type LinksDiscoveredPayload struct {
	LinkIDs []string `json:"linkIds"`
	NodeIDs []string `json:"nodeIds,omitempty"`
}

// CircuitChangedPayload is the payload for circuit.changed events.
type CircuitChangedPayload struct {
	PreviousCircuitID string `json:"previousCircuitId"`
	CircuitID         string `json:"circuitId"`
}
