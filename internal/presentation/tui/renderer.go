package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/errfix/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// Model is the read-only view of a state model rendered by ModelMarkdown.
type Model interface {
	States() []domain.StateID
	Transitions(s domain.StateID) ([]domain.Transition, error)
}

// NewRenderer returns a function that renders markdown using glamour.
// It picks a dark or light style from the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// ModelMarkdown lists the states of m as a markdown table of actions and destinations.
func ModelMarkdown(title string, m Model) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| State | Action | End State |\n")
	sb.WriteString("|---|---|---|\n")

	var deadEnds []string
	for _, s := range m.States() {
		ts, err := m.Transitions(s)
		if err != nil {
			return "", err
		}
		if len(ts) == 0 {
			deadEnds = append(deadEnds, s)
			fmt.Fprintf(&sb, "| %s | _no actions_ | |\n", escapeCell(s))
			continue
		}
		for _, t := range ts {
			fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", escapeCell(t.Start), escapeCell(t.Action), escapeCell(t.End))
		}
	}

	if len(deadEnds) > 0 {
		sb.WriteString("\n**Dead ends:** ")
		sb.WriteString(strings.Join(deadEnds, ", "))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
