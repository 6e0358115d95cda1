package timeline

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/louisbranch/gridfall/internal/run"
)

func sampleEvents() []run.Event {
	payload, _ := json.Marshal(run.NodeHackedPayload{CircuitID: "alpha", NodeID: "a1"})
	return []run.Event{
		{Seq: 1, Type: run.EventRunStarted, Timestamp: fixedNow(), Message: "jacked in"},
		{Seq: 2, Type: run.EventNodeHacked, Timestamp: fixedNow(), Message: "breached", PayloadJSON: payload},
	}
}

func TestExportTimeline_Text(t *testing.T) {
	out, err := ExportTimeline(sampleEvents(), FormatText)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "#1") || !strings.Contains(lines[0], string(run.EventRunStarted)) {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "breached") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestExportTimeline_Markdown(t *testing.T) {
	out, err := ExportTimeline(sampleEvents(), FormatMarkdown)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "| # | Time | Event | Message |") {
		t.Errorf("missing table header: %q", out)
	}
	if !strings.Contains(out, "`"+string(run.EventNodeHacked)+"`") {
		t.Errorf("missing event row: %q", out)
	}
}

func TestExportTimeline_JSONRoundTrip(t *testing.T) {
	events := sampleEvents()

	out, err := ExportTimeline(events, FormatJSON)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	entries, err := ParseTimelineJSON([]byte(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != len(events) {
		t.Fatalf("entries = %d, want %d", len(entries), len(events))
	}
	for i, entry := range entries {
		if entry.Seq != events[i].Seq || entry.Type != events[i].Type || entry.Message != events[i].Message {
			t.Errorf("entry %d = %+v, want %+v", i, entry, events[i])
		}
	}

	var payload run.NodeHackedPayload
	if err := json.Unmarshal(entries[1].Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.NodeID != "a1" {
		t.Errorf("payload node = %q, want a1", payload.NodeID)
	}
}

func TestExportTimeline_UnknownFormat(t *testing.T) {
	_, err := ExportTimeline(sampleEvents(), Format("yaml"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestParseTimelineJSON_Malformed(t *testing.T) {
	if _, err := ParseTimelineJSON([]byte(`{`)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExportSummary(t *testing.T) {
	summary := Summary{
		Circuits: []CircuitSummary{
			{CircuitID: "alpha", Name: "Alpha", Nodes: 2, Hacked: 2, Discovered: 2, Status: StatusCompleted},
		},
		TotalNodes:      2,
		TotalHacked:     2,
		TotalDiscovered: 2,
		Completed:       true,
	}

	t.Run("text", func(t *testing.T) {
		out, err := ExportSummary(summary, FormatText)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		if !strings.Contains(out, "Alpha (alpha): COMPLETED") {
			t.Errorf("output = %q", out)
		}
		if !strings.Contains(out, "run completed") {
			t.Errorf("missing completion line: %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := ExportSummary(summary, FormatJSON)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		var parsed Summary
		if err := json.Unmarshal([]byte(out), &parsed); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !parsed.Completed || parsed.TotalHacked != 2 {
			t.Errorf("parsed = %+v", parsed)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := ExportSummary(summary, Format("csv")); !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("err = %v, want ErrUnknownFormat", err)
		}
	})
}
