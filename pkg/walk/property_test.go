package walk_test

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/aretw0/errfix/pkg/domain"
	"github.com/aretw0/errfix/pkg/model"
	"github.com/aretw0/errfix/pkg/walk"
	"pgregory.net/rapid"
)

// drawRecords draws a random table over a small alphabet of states and actions.
func drawRecords(t *rapid.T) []domain.Transition {
	states := rapid.IntRange(2, 6).Draw(t, "states")
	count := rapid.IntRange(2, 12).Draw(t, "records")
	state := rapid.IntRange(0, states-1)
	action := rapid.SampledFrom([]string{"a", "b", "c"})

	records := make([]domain.Transition, count)
	for i := range records {
		records[i] = domain.NewTransition(
			fmt.Sprintf("S%d", state.Draw(t, "start")),
			action.Draw(t, "action"),
			fmt.Sprintf("S%d", state.Draw(t, "end")),
		)
	}
	return records
}

func TestGenerate_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := drawRecords(t)
		m, err := model.NewBuilder().Build(records)
		if err != nil {
			t.Fatalf("build: %v", err)
		}

		start := records[0].Start
		stepLimit := rapid.IntRange(walk.MinStepLimit, 40).Draw(t, "stepLimit")
		seed := rapid.Uint64().Draw(t, "seed")

		w, err := walk.New().GenerateSeeded(context.Background(), m, start, stepLimit, seed)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		if w.Len() < 1 || w.Len() > stepLimit {
			t.Fatalf("walk has %d steps, limit %d", w.Len(), stepLimit)
		}
		if w.Steps[0].Start != start {
			t.Fatalf("first step starts at %s, want %s", w.Steps[0].Start, start)
		}
		for i, step := range w.Steps {
			choices, err := m.Transitions(step.Start)
			if err != nil || !slices.Contains(choices, step) {
				t.Fatalf("step %d (%s) is not a transition of the model", i, step)
			}
			if i > 0 && w.Steps[i-1].End != step.Start {
				t.Fatalf("step %d does not continue from %s", i, w.Steps[i-1].End)
			}
		}
		if w.EndState != w.Current() {
			t.Fatalf("end state %s, current %s", w.EndState, w.Current())
		}
		if w.Len() < stepLimit && !m.IsDeadEnd(w.EndState) {
			t.Fatalf("walk stopped after %d steps on %s, which has actions", w.Len(), w.EndState)
		}

		if !w.Measured {
			t.Fatalf("coverage not measured")
		}
		for _, c := range []float64{w.StateCoverage, w.TransitionCoverage} {
			if c <= 0 || c > 100 {
				t.Fatalf("coverage %f out of range", c)
			}
		}

		again, err := walk.New().GenerateSeeded(context.Background(), m, start, stepLimit, seed)
		if err != nil {
			t.Fatalf("regenerate: %v", err)
		}
		if !slices.Equal(w.Steps, again.Steps) {
			t.Fatalf("seed %d produced two different walks", seed)
		}
	})
}
