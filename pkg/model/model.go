package model

import (
	"fmt"
	"strings"

	"github.com/aretw0/errfix/pkg/domain"
)

// NoActions is printed by Describe for states without outgoing transitions.
const NoActions = "<No Actions>"

// Model is an immutable state model.
// Every state in States has an entry (possibly empty) in the adjacency lists and vice versa.
type Model struct {
	states    []domain.StateID
	adjacency map[domain.StateID][]domain.Transition
}

// States returns the model's states in canonical order. The returned slice is a copy.
func (m *Model) States() []domain.StateID {
	return append([]domain.StateID(nil), m.states...)
}

// Len returns the number of states.
func (m *Model) Len() int {
	return len(m.states)
}

// Has reports whether s is a state of the model.
func (m *Model) Has(s domain.StateID) bool {
	_, ok := m.adjacency[s]
	return ok
}

// Occurrences counts how many times s appears in the state list.
// Construction deduplicates states, so the result is 0 or 1.
func (m *Model) Occurrences(s domain.StateID) int {
	n := 0
	for _, st := range m.states {
		if st == s {
			n++
		}
	}
	return n
}

// Transitions returns the outgoing transitions of s in insertion order.
func (m *Model) Transitions(s domain.StateID) ([]domain.Transition, error) {
	ts, ok := m.adjacency[s]
	if !ok {
		return nil, fmt.Errorf("state %q: %w", s, domain.ErrUnknownState)
	}
	return append([]domain.Transition(nil), ts...), nil
}

// ActionsFor returns the action labels of the outgoing transitions of s, in adjacency order.
func (m *Model) ActionsFor(s domain.StateID) ([]domain.ActionID, error) {
	ts, ok := m.adjacency[s]
	if !ok {
		return nil, fmt.Errorf("state %q: %w", s, domain.ErrUnknownState)
	}
	actions := make([]domain.ActionID, len(ts))
	for i, t := range ts {
		actions[i] = t.Action
	}
	return actions, nil
}

// LiveTransitions concatenates, in state order, the outgoing transitions of every state.
// Dead ends contribute nothing.
func (m *Model) LiveTransitions() []domain.Transition {
	var out []domain.Transition
	for _, s := range m.states {
		out = append(out, m.adjacency[s]...)
	}
	return out
}

// DeadEnds returns the states with no outgoing transitions, in state order.
func (m *Model) DeadEnds() []domain.StateID {
	var out []domain.StateID
	for _, s := range m.states {
		if len(m.adjacency[s]) == 0 {
			out = append(out, s)
		}
	}
	return out
}

// IsDeadEnd reports whether s is a known state without outgoing transitions.
func (m *Model) IsDeadEnd(s domain.StateID) bool {
	ts, ok := m.adjacency[s]
	return ok && len(ts) == 0
}

// Reachable returns the states reachable from start (start included), in state order.
func (m *Model) Reachable(start domain.StateID) ([]domain.StateID, error) {
	if !m.Has(start) {
		return nil, fmt.Errorf("state %q: %w", start, domain.ErrUnknownState)
	}
	visited := map[domain.StateID]bool{start: true}
	queue := []domain.StateID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range m.adjacency[cur] {
			if !visited[t.End] {
				visited[t.End] = true
				queue = append(queue, t.End)
			}
		}
	}
	out := make([]domain.StateID, 0, len(visited))
	for _, s := range m.states {
		if visited[s] {
			out = append(out, s)
		}
	}
	return out, nil
}

// Describe lists each state with the actions available from it.
func (m *Model) Describe() string {
	var sb strings.Builder
	sb.WriteString("States, and their Actions:")
	for _, s := range m.states {
		fmt.Fprintf(&sb, "\nState: %s\n", s)
		sb.WriteString("Actions:\n")
		ts := m.adjacency[s]
		if len(ts) == 0 {
			fmt.Fprintf(&sb, "\t%s\n", NoActions)
			continue
		}
		for _, t := range ts {
			fmt.Fprintf(&sb, "\t%s\n", t.Action)
		}
	}
	return sb.String()
}

// String implements fmt.Stringer using Describe.
func (m *Model) String() string {
	return m.Describe()
}
