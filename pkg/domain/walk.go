package domain

import (
	"strings"
	"time"
)

// Walk is the record of a traversal over a state model.
// It is created empty by the generator, grown one transition at a time and
// annotated with coverage once generation stops.
type Walk struct {
	// ID is assigned by a WalkStore when the walk is persisted.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	StartState StateID      `json:"start_state" yaml:"start_state"`
	EndState   StateID      `json:"end_state" yaml:"end_state"`
	Steps      []Transition `json:"steps" yaml:"steps"`

	// Seed records the seed of the random source, when known, so the walk can be regenerated.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Measured reports whether the coverage fields below have been computed.
	Measured           bool    `json:"measured" yaml:"measured"`
	StateCoverage      float64 `json:"state_coverage" yaml:"state_coverage"`
	TransitionCoverage float64 `json:"transition_coverage" yaml:"transition_coverage"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// NewWalk creates an empty walk rooted at start.
func NewWalk(start StateID) *Walk {
	return &Walk{
		StartState: start,
		EndState:   start,
		Steps:      []Transition{},
	}
}

// Len returns the number of steps taken.
func (w *Walk) Len() int {
	return len(w.Steps)
}

// Append records a step and moves the end state to the step's destination.
func (w *Walk) Append(t Transition) {
	w.Steps = append(w.Steps, t)
	w.EndState = t.End
}

// Current returns the state the walk is in: the end of the last step, or the start state.
func (w *Walk) Current() StateID {
	if len(w.Steps) == 0 {
		return w.StartState
	}
	return w.Steps[len(w.Steps)-1].End
}

// TransitionsUnique returns the steps with repeated triples removed, in first-visit order.
func (w *Walk) TransitionsUnique() []Transition {
	return UniqueTransitions(w.Steps)
}

// VisitedStates returns every state touched by the walk's steps, in first-visit order.
// A walk with no steps touches no states.
func (w *Walk) VisitedStates() []StateID {
	seen := make(map[StateID]struct{})
	var out []StateID
	for _, t := range w.Steps {
		for _, s := range [2]StateID{t.Start, t.End} {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy of the walk.
func (w *Walk) Clone() *Walk {
	c := *w
	c.Steps = append([]Transition(nil), w.Steps...)
	if w.Seed != nil {
		seed := *w.Seed
		c.Seed = &seed
	}
	return &c
}

// String renders the walk on one line: "start,action => end,...,endState".
func (w *Walk) String() string {
	var sb strings.Builder
	sb.WriteString("Random Walk:\n")
	sb.WriteString(w.StartState)
	sb.WriteString(",")
	for _, t := range w.Steps {
		sb.WriteString(t.Action)
		sb.WriteString(" => ")
		sb.WriteString(t.End)
		sb.WriteString(",")
	}
	sb.WriteString(w.EndState)
	sb.WriteString("\n")
	return sb.String()
}
