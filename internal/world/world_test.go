package world

import (
	"testing"
)

const worldJSON = `{
  "meta": {"version": "1", "author": "tester"},
  "circuits": [
    {
      "id": "alpha",
      "name": "Alpha Grid",
      "nodes": [
        {"id": "gate", "name": "Gate", "level": 0, "challengeDifficulty": 0, "visibleByDefault": true},
        {"id": "relay", "name": "Relay", "level": 1, "challengeDifficulty": 5, "failDie": 6, "criticalFailMode": "BLOCK", "visibleByDefault": true, "isFinal": true}
      ],
      "links": [
        {"id": "l1", "from": "gate", "to": "relay"},
        {"id": "l2", "from": "relay", "to": "gate", "bidirectional": false, "hidden": true}
      ]
    }
  ]
}`

const worldYAML = `
meta:
  version: "1"
circuits:
  - id: alpha
    name: Alpha Grid
    nodes:
      - id: gate
        name: Gate
        level: 0
        challengeDifficulty: 0
        visibleByDefault: true
`

func TestDecodeJSON(t *testing.T) {
	def, err := Decode([]byte(worldJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(def.Circuits) != 1 {
		t.Fatalf("expected 1 circuit, got %d", len(def.Circuits))
	}
	circuit := def.Circuits[0]
	if circuit.ID != "alpha" {
		t.Errorf("circuit id = %q, want alpha", circuit.ID)
	}

	gate, ok := circuit.Node("gate")
	if !ok {
		t.Fatal("gate node missing")
	}
	if gate.FailDie != DefaultFailDie {
		t.Errorf("legacy node fail die = %d, want default %d", gate.FailDie, DefaultFailDie)
	}
	if gate.CriticalFailMode != FailModeWarn || gate.RangeFailMode != FailModeWarn {
		t.Errorf("unspecified fail modes should default to WARN, got %s/%s",
			gate.CriticalFailMode, gate.RangeFailMode)
	}

	relay, _ := circuit.Node("relay")
	if relay.FailDie != 6 {
		t.Errorf("relay fail die = %d, want 6", relay.FailDie)
	}
	if relay.CriticalFailMode != FailModeBlock {
		t.Errorf("relay critical mode = %s, want BLOCK", relay.CriticalFailMode)
	}
	if !relay.IsFinal {
		t.Error("relay should be final")
	}
}

func TestDecodeYAML(t *testing.T) {
	def, err := Decode([]byte(worldYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(def.Circuits) != 1 || def.Circuits[0].ID != "alpha" {
		t.Fatalf("unexpected circuits: %+v", def.Circuits)
	}
	if def.Circuits[0].Nodes[0].FailDie != DefaultFailDie {
		t.Errorf("yaml node fail die should default to %d", DefaultFailDie)
	}
}

func TestLinkDirectionality(t *testing.T) {
	def, err := Decode([]byte(worldJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	circuit := def.Circuits[0]

	l1, _ := circuit.Link("l1")
	if !l1.IsBidirectional() {
		t.Error("links default to bidirectional")
	}
	l2, _ := circuit.Link("l2")
	if l2.IsBidirectional() {
		t.Error("l2 is declared one-way")
	}

	// l1 touches both ends; l2 only its origin.
	touchingGate := circuit.LinksTouching("gate")
	if len(touchingGate) != 1 || touchingGate[0].ID != "l1" {
		t.Errorf("links touching gate = %v, want just l1", linkIDs(touchingGate))
	}
	touchingRelay := circuit.LinksTouching("relay")
	if len(touchingRelay) != 2 {
		t.Errorf("links touching relay = %v, want l1 and l2", linkIDs(touchingRelay))
	}

	if _, ok := circuit.LinkBetween("gate", "relay"); !ok {
		t.Error("gate->relay should resolve over bidirectional l1")
	}
	if _, ok := circuit.LinkBetween("relay", "gate"); !ok {
		t.Error("relay->gate should resolve over l1 or one-way l2")
	}
}

func TestEntryAndFinalNodes(t *testing.T) {
	def, err := Decode([]byte(worldJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	circuit := def.Circuits[0]

	entry, ok := circuit.EntryNode()
	if !ok || entry.ID != "gate" {
		t.Errorf("entry node = %v, want gate", entry.ID)
	}
	final, ok := circuit.FinalNode()
	if !ok || final.ID != "relay" {
		t.Errorf("final node = %v, want relay", final.ID)
	}
}

func TestFarEnd(t *testing.T) {
	link := Link{ID: "l", From: "a", To: "b"}
	if got := link.FarEnd("a"); got != "b" {
		t.Errorf("FarEnd(a) = %q, want b", got)
	}
	if got := link.FarEnd("b"); got != "a" {
		t.Errorf("FarEnd(b) = %q, want a", got)
	}
}

func linkIDs(links []Link) []string {
	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ID)
	}
	return ids
}
