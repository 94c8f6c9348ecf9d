// Package coverage computes how much of a state model a walk exercises.
//
// All functions are pure: calling them again on the same walk and model
// returns the same numbers.
package coverage

import (
	"fmt"

	"github.com/aretw0/errfix/pkg/domain"
)

// Model is the read-only view of a state model needed to compute coverage.
// *model.Model satisfies it.
type Model interface {
	Len() int
	LiveTransitions() []domain.Transition
}

// Report holds both coverage percentages of a walk.
type Report struct {
	States      float64 `json:"state_coverage"`
	Transitions float64 `json:"transition_coverage"`
}

// StateCoverage returns the percentage of the model's states touched by the walk's steps,
// counting both the start and the end of every step.
func StateCoverage(w *domain.Walk, m Model) (float64, error) {
	total := m.Len()
	if total == 0 {
		return 0, fmt.Errorf("state coverage: model has no states: %w", domain.ErrDegenerateModel)
	}
	return percent(len(w.VisitedStates()), total), nil
}

// TransitionCoverage returns the percentage of the model's live transitions the walk
// exercised, counting each distinct transition once.
func TransitionCoverage(w *domain.Walk, m Model) (float64, error) {
	total := len(m.LiveTransitions())
	if total == 0 {
		return 0, fmt.Errorf("transition coverage: model has no live transitions: %w", domain.ErrDegenerateModel)
	}
	return percent(len(w.TransitionsUnique()), total), nil
}

// Measure computes both percentages.
func Measure(w *domain.Walk, m Model) (Report, error) {
	states, err := StateCoverage(w, m)
	if err != nil {
		return Report{}, err
	}
	transitions, err := TransitionCoverage(w, m)
	if err != nil {
		return Report{}, err
	}
	return Report{States: states, Transitions: transitions}, nil
}

// Annotate measures the walk and stores the result on it.
// On error the walk is left untouched.
func Annotate(w *domain.Walk, m Model) error {
	r, err := Measure(w, m)
	if err != nil {
		return err
	}
	w.StateCoverage = r.States
	w.TransitionCoverage = r.Transitions
	w.Measured = true
	return nil
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

// Combined measures the union of several walks, as if their steps had been taken in one walk.
func Combined(m Model, walks []*domain.Walk) (Report, error) {
	union := &domain.Walk{}
	for _, w := range walks {
		union.Steps = append(union.Steps, w.Steps...)
	}
	return Measure(union, m)
}
