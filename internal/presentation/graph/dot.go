package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// StateShape is the Graphviz node shape used for states.
const StateShape = "ellipse"

// GenerateDOT produces a Graphviz digraph from a description.
// Visited states are filled in light blue and the current state in yellow when an overlay is given.
func GenerateDOT(d *Description, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	sb.WriteString("    rankdir=TB;\n    fontsize=12;\n    center=true;\n    landscape=true;\n")
	fmt.Fprintf(&sb, "    node [shape=%s];\n", StateShape)

	visited := make(map[string]bool)
	current := ""
	if overlay != nil {
		for _, id := range overlay.VisitedNodes {
			visited[id] = true
		}
		current = overlay.CurrentNode
	}

	for _, n := range d.Nodes {
		var attrs []string
		switch {
		case overlay != nil && n.ID == current:
			attrs = append(attrs, `style=filled`, `fillcolor="#ffeb3b"`)
		case visited[n.ID]:
			attrs = append(attrs, `style=filled`, `fillcolor="#e1f5fe"`)
		}
		if n.DeadEnd {
			attrs = append(attrs, "peripheries=2")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&sb, "    %s;\n", strconv.Quote(n.ID))
			continue
		}
		fmt.Fprintf(&sb, "    %s [%s];\n", strconv.Quote(n.ID), strings.Join(attrs, ", "))
	}

	for _, e := range d.Edges {
		fmt.Fprintf(&sb, "    %s -> %s [label=%s];\n", strconv.Quote(e.From), strconv.Quote(e.To), strconv.Quote(e.Label))
	}

	sb.WriteString("}\n")
	return sb.String()
}
