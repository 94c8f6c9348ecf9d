// Package graph exports a state model as a node and labeled-edge description,
// and renders it as Mermaid or Graphviz DOT.
package graph

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/errfix/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Model is the read-only view of a state model the exporters need.
// *model.Model satisfies it.
type Model interface {
	States() []domain.StateID
	Transitions(s domain.StateID) ([]domain.Transition, error)
}

// Node is a state of the model.
type Node struct {
	ID      string `json:"id" yaml:"id"`
	DeadEnd bool   `json:"dead_end,omitempty" yaml:"dead_end,omitempty"`
}

// Edge is a directed transition labeled with its action.
type Edge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label" yaml:"label"`
}

// Description is the format-neutral export of a model:
// one node per state, in state order, and one edge per transition.
type Description struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Describe builds the Description of m.
func Describe(m Model) (*Description, error) {
	d := &Description{Nodes: []Node{}, Edges: []Edge{}}
	for _, s := range m.States() {
		ts, err := m.Transitions(s)
		if err != nil {
			return nil, err
		}
		d.Nodes = append(d.Nodes, Node{ID: s, DeadEnd: len(ts) == 0})
		for _, t := range ts {
			d.Edges = append(d.Edges, Edge{From: t.Start, To: t.End, Label: t.Action})
		}
	}
	return d, nil
}

// Overlay marks the part of the graph a walk went through.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// WalkOverlay builds an overlay from a walk: every visited state, and its end state as current.
func WalkOverlay(w *domain.Walk) *Overlay {
	visited := append([]string{w.StartState}, w.VisitedStates()...)
	return &Overlay{VisitedNodes: visited, CurrentNode: w.EndState}
}

// Format names an output format of Render.
type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatMermaid, FormatDOT, FormatJSON, FormatYAML}

// Render exports m in the given format. The overlay is only used by Mermaid and DOT and may be nil.
func Render(m Model, format Format, overlay *Overlay) (string, error) {
	d, err := Describe(m)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatMermaid, "":
		return GenerateMermaid(d, overlay), nil
	case FormatDOT:
		return GenerateDOT(d, overlay), nil
	case FormatJSON:
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal graph: %w", err)
		}
		return string(out) + "\n", nil
	case FormatYAML:
		out, err := yaml.Marshal(d)
		if err != nil {
			return "", fmt.Errorf("failed to marshal graph: %w", err)
		}
		return string(out), nil
	}
	return "", fmt.Errorf("unsupported graph format %q", format)
}
