package run

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/gridfall/internal/i18n"
)

// Result records the outcome of the most recent breach attempt on a node.
type Result string

const (
	// ResultNone indicates the node has never been attempted.
	ResultNone Result = "none"
	// ResultSuccess indicates the last attempt succeeded.
	ResultSuccess Result = "success"
	// ResultFail indicates the last attempt failed.
	ResultFail Result = "fail"
)

// Severity classifies a recorded warning.
type Severity string

const (
	// SeverityTrace marks low-signal warnings such as surviving a critical
	// failure on a WARN-mode node.
	SeverityTrace Severity = "TRACE"
	// SeverityWarn marks ordinary failure warnings.
	SeverityWarn Severity = "WARN"
)

// Position locates the player on the grid.
type Position struct {
	CircuitID string `json:"circuitId"`
	NodeID    string `json:"nodeId"`
}

// NodeState is the mutable per-run state of one node.
type NodeState struct {
	Hacked       bool   `json:"hacked"`
	Blocked      bool   `json:"blocked"`
	Inaccessible bool   `json:"inaccessible"`
	Discovered   bool   `json:"discovered"`
	Attempts     int    `json:"attempts"`
	LastResult   Result `json:"lastResult"`
}

// LinkState is the mutable per-run state of one link.
type LinkState struct {
	Discovered   bool `json:"discovered"`
	Inaccessible bool `json:"inaccessible"`
}

// Warning is an append-only record of a failed breach the player survived.
type Warning struct {
	Severity  Severity  `json:"severity"`
	NodeID    string    `json:"nodeId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the lightweight state capture stored on every timeline event:
// position plus node/link flags, without the timeline itself.
type Snapshot struct {
	Position          Position             `json:"position"`
	Nodes             map[string]NodeState `json:"nodes"`
	Links             map[string]LinkState `json:"links"`
	BlockedCircuits   map[string]bool      `json:"blockedCircuits,omitempty"`
	CompletedCircuits map[string]bool      `json:"completedCircuits,omitempty"`
}

// State is the full execution state of one run. Resolvers never mutate a
// State they receive; they clone it and return the clone.
type State struct {
	// Locale selects the catalog used for player-facing messages.
	Locale            string               `json:"locale,omitempty"`
	Position          Position             `json:"position"`
	Nodes             map[string]NodeState `json:"nodes"`
	Links             map[string]LinkState `json:"links"`
	LastHacked        map[string]string    `json:"lastHackedNodeByCircuit,omitempty"`
	Warnings          []Warning            `json:"warnings,omitempty"`
	BlockedCircuits   map[string]bool      `json:"blockedCircuits,omitempty"`
	CompletedCircuits map[string]bool      `json:"completedCircuits,omitempty"`
	// GameOver is the terminal flag raised by a catastrophic breach.
	GameOver bool    `json:"gameOver,omitempty"`
	Timeline []Event `json:"timeline"`
}

// Clone returns a deep copy of the state. Mutating the copy never affects
// the original.
func (s State) Clone() State {
	out := s
	out.Nodes = cloneMap(s.Nodes)
	out.Links = cloneMap(s.Links)
	out.LastHacked = cloneMap(s.LastHacked)
	out.BlockedCircuits = cloneMap(s.BlockedCircuits)
	out.CompletedCircuits = cloneMap(s.CompletedCircuits)
	out.Warnings = append([]Warning(nil), s.Warnings...)
	out.Timeline = append([]Event(nil), s.Timeline...)
	return out
}

// Snapshot captures the current state for a timeline event.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Position:          s.Position,
		Nodes:             cloneMap(s.Nodes),
		Links:             cloneMap(s.Links),
		BlockedCircuits:   cloneMap(s.BlockedCircuits),
		CompletedCircuits: cloneMap(s.CompletedCircuits),
	}
}

// Append records a timeline event capturing the current state. The payload
// is marshaled to JSON; nil payloads produce events without one.
func (s *State) Append(evtType EventType, message string, payload any, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}
	s.Timeline = append(s.Timeline, Event{
		Seq:         uint64(len(s.Timeline)) + 1,
		Type:        evtType,
		Timestamp:   now().UTC(),
		Message:     message,
		PayloadJSON: raw,
		Snapshot:    s.Snapshot(),
	})
}

// AddWarning appends a warning record.
func (s *State) AddWarning(severity Severity, nodeID, message string, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.Warnings = append(s.Warnings, Warning{
		Severity:  severity,
		NodeID:    nodeID,
		Message:   message,
		Timestamp: now().UTC(),
	})
}

// Printer returns the message printer for the run's locale.
func (s State) Printer() *i18n.Printer {
	return i18n.Default().Printer(s.Locale)
}

// Node returns the state for a node id.
func (s State) Node(id string) (NodeState, bool) {
	node, ok := s.Nodes[id]
	return node, ok
}

// Link returns the state for a link id.
func (s State) Link(id string) (LinkState, bool) {
	link, ok := s.Links[id]
	return link, ok
}

// CircuitBlocked reports whether the circuit is under circuit-wide lockout.
func (s State) CircuitBlocked(circuitID string) bool {
	return s.BlockedCircuits[circuitID]
}

// CircuitCompleted reports whether the circuit has been completed.
func (s State) CircuitCompleted(circuitID string) bool {
	return s.CompletedCircuits[circuitID]
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Marshal serializes the state as a JSON document for storage.
func Marshal(state State) ([]byte, error) {
	return json.Marshal(state)
}

// Unmarshal restores a state from its stored JSON document.
func Unmarshal(data []byte) (State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	if state.Nodes == nil {
		state.Nodes = map[string]NodeState{}
	}
	if state.Links == nil {
		state.Links = map[string]LinkState{}
	}
	return state, nil
}
