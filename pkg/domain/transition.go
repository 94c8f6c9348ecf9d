package domain

import "fmt"

// StateID identifies a state of the system under test.
type StateID = string

// ActionID labels an action that moves the system between states.
type ActionID = string

// Transition is a (start, action, end) triple.
// Transitions are plain values: two transitions are equal when all three fields match,
// so they can be compared with == and used as map keys.
type Transition struct {
	Start  StateID  `json:"start" yaml:"start"`
	Action ActionID `json:"action" yaml:"action"`
	End    StateID  `json:"end" yaml:"end"`
}

// NewTransition builds a transition from its three fields.
func NewTransition(start StateID, action ActionID, end StateID) Transition {
	return Transition{Start: start, Action: action, End: end}
}

// String renders the transition as "start,action => end".
func (t Transition) String() string {
	return fmt.Sprintf("%s,%s => %s", t.Start, t.Action, t.End)
}

// UniqueTransitions returns ts without repeated triples, keeping first occurrences in order.
// The input slice is not modified.
func UniqueTransitions(ts []Transition) []Transition {
	seen := make(map[Transition]struct{}, len(ts))
	out := make([]Transition, 0, len(ts))
	for _, t := range ts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
