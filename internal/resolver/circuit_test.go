package resolver

import (
	"testing"

	gferrors "github.com/louisbranch/gridfall/internal/errors"
	"github.com/louisbranch/gridfall/internal/run"
)

func TestSwitchCircuit_ArrivesAtEntry(t *testing.T) {
	def := gridWorld()
	state := newRunState(t, def)

	next, outcome := SwitchCircuit(state, def, "beta", fixedNow)

	if !outcome.Switched {
		t.Fatalf("expected switch, got %+v", outcome)
	}
	want := run.Position{CircuitID: "beta", NodeID: "door"}
	if next.Position != want {
		t.Errorf("position = %+v, want %+v", next.Position, want)
	}
	if outcome.PreviousCircuitID != "alpha" {
		t.Errorf("previous = %q, want alpha", outcome.PreviousCircuitID)
	}
	if !next.Nodes["door"].Discovered {
		t.Error("arrival node must be discovered")
	}
	last := next.Timeline[len(next.Timeline)-1]
	if last.Type != run.EventCircuitChanged {
		t.Errorf("last event = %s, want %s", last.Type, run.EventCircuitChanged)
	}
}

func TestSwitchCircuit_PrefersLastHackedNode(t *testing.T) {
	def := gridWorld()
	state := markHacked(newRunState(t, def), "core")
	state.LastHacked["beta"] = "core"

	next, outcome := SwitchCircuit(state, def, "beta", fixedNow)

	if !outcome.Switched || next.Position.NodeID != "core" {
		t.Fatalf("expected arrival at core, got %+v", outcome)
	}
}

func TestSwitchCircuit_FallsBackWhenLastHackedInvalid(t *testing.T) {
	def := gridWorld()
	state := markHacked(newRunState(t, def), "core")
	state.LastHacked["beta"] = "core"

	node := state.Nodes["core"]
	node.Blocked = true
	state.Nodes["core"] = node

	next, outcome := SwitchCircuit(state, def, "beta", fixedNow)

	if !outcome.Switched || next.Position.NodeID != "door" {
		t.Fatalf("expected fallback to the entry node, got %+v", outcome)
	}
}

func TestSwitchCircuit_Rejections(t *testing.T) {
	def := gridWorld()

	tests := []struct {
		name     string
		prepare  func(run.State) run.State
		target   string
		wantCode gferrors.Code
	}{
		{
			name:     "unknown circuit",
			prepare:  func(s run.State) run.State { return s },
			target:   "omega",
			wantCode: gferrors.CodeSwitchCircuitNotFound,
		},
		{
			name:     "same circuit",
			prepare:  func(s run.State) run.State { return s },
			target:   "alpha",
			wantCode: gferrors.CodeSwitchSameCircuit,
		},
		{
			name: "target blocked",
			prepare: func(s run.State) run.State {
				s.BlockedCircuits["beta"] = true
				return s
			},
			target:   "beta",
			wantCode: gferrors.CodeSwitchCircuitBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tt.prepare(newRunState(t, def))

			next, outcome := SwitchCircuit(state, def, tt.target, fixedNow)

			if !outcome.Rejected || outcome.Code != tt.wantCode {
				t.Fatalf("outcome = %+v, want rejection %s", outcome, tt.wantCode)
			}
			if next.Position != state.Position {
				t.Error("rejected switches must not change position")
			}
		})
	}
}
