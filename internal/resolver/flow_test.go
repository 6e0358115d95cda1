package resolver

import (
	"testing"

	gferrors "github.com/louisbranch/gridfall/internal/errors"
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/timeline"
	"github.com/louisbranch/gridfall/internal/world"
)

// TestLockoutFlow walks a three-node chain end to end: breach the entry,
// advance, blow the fail die on a BLOCK node, and verify the circuit-wide
// lockout freezes every subsequent action.
func TestLockoutFlow(t *testing.T) {
	def := world.Definition{
		Circuits: []world.Circuit{
			{
				ID:   "main",
				Name: "Main",
				Nodes: []world.Node{
					{ID: "a", Name: "A", Level: 0, ChallengeDifficulty: 5, VisibleByDefault: true},
					{
						ID: "b", Name: "B", Level: 1,
						ChallengeDifficulty: 7,
						CriticalFailMode:    world.FailModeBlock,
						RangeFailMode:       world.FailModeBlock,
						VisibleByDefault:    true,
					},
					{ID: "c", Name: "C", Level: 2, ChallengeDifficulty: 10, VisibleByDefault: true},
				},
				Links: []world.Link{
					{ID: "ab", From: "a", To: "b"},
					{ID: "bc", From: "b", To: "c"},
				},
			},
		},
	}
	def.ApplyDefaults()

	state := newRunState(t, def)

	// Breach the entry node.
	state, hackOut := Hack(state, def, HackInput{RollValue: 6}, fixedNow)
	if !hackOut.Success {
		t.Fatalf("entry breach failed: %+v", hackOut)
	}

	// Advance onto B.
	state, moveOut := Move(state, def, "b")
	if !moveOut.Moved {
		t.Fatalf("advance to b failed: %+v", moveOut)
	}

	// Fail the check, then roll a 2 on the fail die: critical band, BLOCK.
	state, hackOut = Hack(state, def, HackInput{RollValue: 4}, fixedNow)
	if !hackOut.NeedsSecondRoll {
		t.Fatalf("expected second-roll demand: %+v", hackOut)
	}
	if hackOut.FailDie != world.DefaultFailDie {
		t.Errorf("fail die = %d, want default %d", hackOut.FailDie, world.DefaultFailDie)
	}
	state, hackOut = Hack(state, def, HackInput{RollValue: 4, FailDieRoll: intPtr(2)}, fixedNow)
	if !hackOut.Blocked || !hackOut.CircuitBlocked {
		t.Fatalf("expected circuit lockout: %+v", hackOut)
	}
	if hackOut.GameOver {
		t.Fatal("difficulty 7 must not end the run")
	}

	// Everything on the circuit is now frozen.
	if _, out := Hack(state, def, HackInput{RollValue: 20}, fixedNow); !out.Rejected {
		t.Errorf("hack after lockout should be rejected, got %+v", out)
	}
	if _, out := Move(state, def, "a"); !out.Rejected || out.Code != gferrors.CodeMoveCircuitBlocked {
		t.Errorf("move after lockout should be rejected, got %+v", out)
	}
	if _, out := Discover(state, def, fixedNow); !out.Rejected {
		t.Errorf("discover after lockout should be rejected, got %+v", out)
	}

	// The timeline tells the whole story in order.
	types := eventTypes(state.Timeline)
	want := []run.EventType{
		run.EventRunStarted,
		run.EventNodeHacked,
		run.EventNodeBlocked,
		run.EventCircuitBlocked,
	}
	if len(types) != len(want) {
		t.Fatalf("timeline = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("timeline = %v, want %v", types, want)
		}
	}

	// Each event snapshot froze the state at its moment: B is open in the
	// hack snapshot and blocked in the lockout snapshot.
	if state.Timeline[1].Snapshot.Nodes["b"].Blocked {
		t.Error("early snapshot should predate the lockout")
	}
	if !state.Timeline[3].Snapshot.Nodes["b"].Blocked {
		t.Error("lockout snapshot should record the blocked node")
	}

	// The exported timeline survives a JSON round trip intact.
	export, err := timeline.ExportTimeline(state.Timeline, timeline.FormatJSON)
	if err != nil {
		t.Fatalf("export timeline: %v", err)
	}
	entries, err := timeline.ParseTimelineJSON([]byte(export))
	if err != nil {
		t.Fatalf("parse timeline export: %v", err)
	}
	if len(entries) != len(state.Timeline) {
		t.Fatalf("entries = %d, want %d", len(entries), len(state.Timeline))
	}
	for i, entry := range entries {
		if entry.Type != state.Timeline[i].Type || entry.Message != state.Timeline[i].Message {
			t.Errorf("entry %d = %+v, want %s %q",
				i, entry, state.Timeline[i].Type, state.Timeline[i].Message)
		}
	}
}
