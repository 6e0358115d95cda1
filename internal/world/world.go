package world

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultFailDie is assigned to nodes authored before fail dice existed.
const DefaultFailDie = 4

// FailMode selects how a failed breach is handled for a node.
type FailMode string

const (
	// FailModeWarn records a warning and leaves the node open for retry.
	FailModeWarn FailMode = "WARN"
	// FailModeBlock locks the node and its owning circuit permanently.
	FailModeBlock FailMode = "BLOCK"
)

// IsValid reports whether the fail mode is a known value.
func (m FailMode) IsValid() bool {
	return m == FailModeWarn || m == FailModeBlock
}

// Meta carries authoring metadata for a world definition.
type Meta struct {
	Version     string `json:"version" yaml:"version"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Coords positions a node on the rendered map. Informational only.
type Coords struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a hackable target inside a circuit.
type Node struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Level is informational only and never gates access; level 0 marks an
	// entry node used for initial placement.
	Level               int      `json:"level" yaml:"level" validate:"min=0"`
	ChallengeDifficulty int      `json:"challengeDifficulty" yaml:"challengeDifficulty" validate:"min=0"`
	FailDie             int      `json:"failDie,omitempty" yaml:"failDie,omitempty"`
	CriticalFailMode    FailMode `json:"criticalFailMode,omitempty" yaml:"criticalFailMode,omitempty" validate:"omitempty,oneof=WARN BLOCK"`
	RangeFailMode       FailMode `json:"rangeFailMode,omitempty" yaml:"rangeFailMode,omitempty" validate:"omitempty,oneof=WARN BLOCK"`
	RangeFailMessage    string   `json:"rangeFailMessage,omitempty" yaml:"rangeFailMessage,omitempty"`
	VisibleByDefault    bool     `json:"visibleByDefault" yaml:"visibleByDefault"`
	IsFinal             bool     `json:"isFinal,omitempty" yaml:"isFinal,omitempty"`
	Coords              *Coords  `json:"coords,omitempty" yaml:"coords,omitempty"`
}

// IsEntry reports whether the node is an entry node for initial placement.
func (n Node) IsEntry() bool {
	return n.Level == 0
}

// Link is a traversable connection between two nodes of one circuit.
type Link struct {
	ID     string `json:"id" yaml:"id" validate:"required"`
	From   string `json:"from" yaml:"from" validate:"required"`
	To     string `json:"to" yaml:"to" validate:"required"`
	Style  string `json:"style,omitempty" yaml:"style,omitempty"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	// Bidirectional defaults to true when absent from the document.
	Bidirectional *bool `json:"bidirectional,omitempty" yaml:"bidirectional,omitempty"`
}

// IsBidirectional reports whether the link can be traversed both ways.
func (l Link) IsBidirectional() bool {
	return l.Bidirectional == nil || *l.Bidirectional
}

// Circuit is a self-contained sub-graph of nodes and links. It is the unit
// of lockout and completion.
type Circuit struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Nodes       []Node `json:"nodes" yaml:"nodes" validate:"required,min=1,dive"`
	Links       []Link `json:"links,omitempty" yaml:"links,omitempty" validate:"dive"`
}

// Definition is an immutable authored world: metadata plus an ordered list
// of circuits.
type Definition struct {
	Meta     Meta      `json:"meta" yaml:"meta"`
	Circuits []Circuit `json:"circuits" yaml:"circuits" validate:"required,min=1,dive"`
}

// ApplyDefaults fills in values the authoring format allows to be omitted:
// fail dice on legacy nodes and fail modes left unspecified.
func (d *Definition) ApplyDefaults() {
	for ci := range d.Circuits {
		for ni := range d.Circuits[ci].Nodes {
			node := &d.Circuits[ci].Nodes[ni]
			if node.FailDie == 0 {
				node.FailDie = DefaultFailDie
			}
			if node.CriticalFailMode == "" {
				node.CriticalFailMode = FailModeWarn
			}
			if node.RangeFailMode == "" {
				node.RangeFailMode = FailModeWarn
			}
		}
	}
}

// Decode parses a world definition document, accepting JSON or YAML, and
// applies authoring defaults. It does not run validation; callers pass the
// result through the validate package before use.
func Decode(data []byte) (Definition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// DecodeJSON parses a JSON world definition document.
func DecodeJSON(data []byte) (Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("decode world json: %w", err)
	}
	def.ApplyDefaults()
	return def, nil
}

// DecodeYAML parses a YAML world definition document.
func DecodeYAML(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("decode world yaml: %w", err)
	}
	def.ApplyDefaults()
	return def, nil
}
