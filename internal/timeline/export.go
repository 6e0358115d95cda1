package timeline

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/gridfall/internal/run"
)

// Format selects an export rendering.
type Format string

const (
	// FormatText renders plain text, one line per record.
	FormatText Format = "text"
	// FormatMarkdown renders a Markdown table.
	FormatMarkdown Format = "markdown"
	// FormatJSON renders machine-readable JSON.
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates an unsupported export format.
var ErrUnknownFormat = fmt.Errorf("unknown export format")

// Entry is the exported view of one timeline event. Snapshots are omitted
// to keep exports lightweight.
type Entry struct {
	Seq       uint64          `json:"seq"`
	Type      run.EventType   `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Message   string          `json:"message"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Entries projects timeline events into their exported form, preserving
// order.
func Entries(events []run.Event) []Entry {
	entries := make([]Entry, 0, len(events))
	for _, evt := range events {
		entries = append(entries, Entry{
			Seq:       evt.Seq,
			Type:      evt.Type,
			Timestamp: evt.Timestamp,
			Message:   evt.Message,
			Payload:   evt.PayloadJSON,
		})
	}
	return entries
}

// ExportTimeline renders the timeline in the requested format.
func ExportTimeline(events []run.Event, format Format) (string, error) {
	entries := Entries(events)

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal timeline: %w", err)
		}
		return string(data), nil

	case FormatText:
		var b strings.Builder
		for _, entry := range entries {
			fmt.Fprintf(&b, "#%d %s [%s] %s\n",
				entry.Seq,
				entry.Timestamp.Format(time.RFC3339),
				entry.Type,
				entry.Message)
		}
		return b.String(), nil

	case FormatMarkdown:
		var b strings.Builder
		b.WriteString("| # | Time | Event | Message |\n")
		b.WriteString("|---|------|-------|---------|\n")
		for _, entry := range entries {
			fmt.Fprintf(&b, "| %d | %s | `%s` | %s |\n",
				entry.Seq,
				entry.Timestamp.Format(time.RFC3339),
				entry.Type,
				entry.Message)
		}
		return b.String(), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseTimelineJSON reparses a JSON timeline export. It is the inverse of
// ExportTimeline with FormatJSON.
func ParseTimelineJSON(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse timeline export: %w", err)
	}
	return entries, nil
}

// ExportSummary renders the audit summary in the requested format.
func ExportSummary(summary Summary, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal summary: %w", err)
		}
		return string(data), nil

	case FormatText:
		var b strings.Builder
		for _, cs := range summary.Circuits {
			fmt.Fprintf(&b, "%s (%s): %s - %d/%d hacked, %d blocked, %d discovered\n",
				cs.Name, cs.CircuitID, cs.Status, cs.Hacked, cs.Nodes, cs.Blocked, cs.Discovered)
		}
		fmt.Fprintf(&b, "total: %d/%d hacked, %d blocked, %d discovered\n",
			summary.TotalHacked, summary.TotalNodes, summary.TotalBlocked, summary.TotalDiscovered)
		if summary.GameOver {
			b.WriteString("run terminated\n")
		} else if summary.Completed {
			b.WriteString("run completed\n")
		}
		return b.String(), nil

	case FormatMarkdown:
		var b strings.Builder
		b.WriteString("| Circuit | Status | Hacked | Blocked | Discovered |\n")
		b.WriteString("|---------|--------|--------|---------|------------|\n")
		for _, cs := range summary.Circuits {
			fmt.Fprintf(&b, "| %s | %s | %d/%d | %d | %d |\n",
				cs.Name, cs.Status, cs.Hacked, cs.Nodes, cs.Blocked, cs.Discovered)
		}
		fmt.Fprintf(&b, "\n**Total:** %d/%d hacked, %d blocked, %d discovered\n",
			summary.TotalHacked, summary.TotalNodes, summary.TotalBlocked, summary.TotalDiscovered)
		return b.String(), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
