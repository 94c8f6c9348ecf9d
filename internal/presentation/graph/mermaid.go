package graph

import (
	"fmt"
	"strings"
)

// GenerateMermaid produces a Mermaid flowchart from a description.
// It applies semantic styling:
// - Dead end: ((Circle))
// - Default: [Rectangle]
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(d *Description, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	// Node IDs are positional (s0, s1, ...); the state name is only ever a label.
	ids := make(map[string]string, len(d.Nodes))
	for i, node := range d.Nodes {
		ids[node.ID] = fmt.Sprintf("s%d", i)
	}

	for _, node := range d.Nodes {
		opener, closer := "[", "]"
		if node.DeadEnd {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[node.ID], opener, escapeLabel(node.ID), closer)
	}

	for _, e := range d.Edges {
		from, okFrom := ids[e.From]
		to, okTo := ids[e.To]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, escapeLabel(e.Label), to)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, name := range overlay.VisitedNodes {
			id, ok := ids[name]
			if ok && !visitedSet[id] {
				visitedSet[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}

		if id, ok := ids[overlay.CurrentNode]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
	}

	return sb.String()
}

// escapeLabel replaces double quotes, which would end a Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
