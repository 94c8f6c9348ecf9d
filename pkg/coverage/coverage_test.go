package coverage_test

import (
	"testing"

	"github.com/aretw0/errfix/pkg/coverage"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/aretw0/errfix/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildModel(t *testing.T, records ...domain.Transition) *model.Model {
	t.Helper()
	m, err := model.NewBuilder().Build(records)
	require.NoError(t, err)
	return m
}

func TestCoverage(t *testing.T) {
	// A -> B -> C -> A plus a dead end D reachable from C.
	m := buildModel(t,
		domain.NewTransition("A", "go", "B"),
		domain.NewTransition("B", "go", "C"),
		domain.NewTransition("C", "go", "A"),
		domain.NewTransition("C", "stop", "D"),
	)

	tests := []struct {
		name        string
		steps       []domain.Transition
		states      float64
		transitions float64
	}{
		{
			name:        "Empty Walk",
			steps:       nil,
			states:      0,
			transitions: 0,
		},
		{
			name:        "Single Step",
			steps:       []domain.Transition{domain.NewTransition("A", "go", "B")},
			states:      50,
			transitions: 25,
		},
		{
			name: "Repeated Steps Count Once",
			steps: []domain.Transition{
				domain.NewTransition("A", "go", "B"),
				domain.NewTransition("B", "go", "C"),
				domain.NewTransition("C", "go", "A"),
				domain.NewTransition("A", "go", "B"),
			},
			states:      75,
			transitions: 75,
		},
		{
			name: "Full Coverage",
			steps: []domain.Transition{
				domain.NewTransition("A", "go", "B"),
				domain.NewTransition("B", "go", "C"),
				domain.NewTransition("C", "go", "A"),
				domain.NewTransition("A", "go", "B"),
				domain.NewTransition("B", "go", "C"),
				domain.NewTransition("C", "stop", "D"),
			},
			states:      100,
			transitions: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.NewWalk("A")
			for _, s := range tt.steps {
				w.Append(s)
			}

			states, err := coverage.StateCoverage(w, m)
			require.NoError(t, err)
			assert.InDelta(t, tt.states, states, 1e-9)

			transitions, err := coverage.TransitionCoverage(w, m)
			require.NoError(t, err)
			assert.InDelta(t, tt.transitions, transitions, 1e-9)
		})
	}
}

func TestAnnotate_Idempotent(t *testing.T) {
	m := buildModel(t,
		domain.NewTransition("A", "go", "B"),
		domain.NewTransition("B", "back", "A"),
		domain.NewTransition("B", "on", "C"),
	)
	w := domain.NewWalk("A")
	w.Append(domain.NewTransition("A", "go", "B"))
	w.Append(domain.NewTransition("B", "back", "A"))

	require.NoError(t, coverage.Annotate(w, m))
	first := *w
	require.NoError(t, coverage.Annotate(w, m))

	assert.True(t, w.Measured)
	assert.Equal(t, first.StateCoverage, w.StateCoverage)
	assert.Equal(t, first.TransitionCoverage, w.TransitionCoverage)
	assert.InDelta(t, 200.0/3, w.StateCoverage, 1e-9)
	assert.InDelta(t, 200.0/3, w.TransitionCoverage, 1e-9)
}

type emptyModel struct {
	states int
}

func (e emptyModel) Len() int { return e.states }
func (e emptyModel) LiveTransitions() []domain.Transition { return nil }

func TestCoverage_DegenerateModel(t *testing.T) {
	w := domain.NewWalk("A")

	_, err := coverage.StateCoverage(w, emptyModel{})
	assert.ErrorIs(t, err, domain.ErrDegenerateModel)

	_, err = coverage.TransitionCoverage(w, emptyModel{states: 2})
	assert.ErrorIs(t, err, domain.ErrDegenerateModel)

	err = coverage.Annotate(w, emptyModel{states: 2})
	assert.ErrorIs(t, err, domain.ErrDegenerateModel)
	assert.False(t, w.Measured)
}

func TestCombined(t *testing.T) {
	m := buildModel(t,
		domain.NewTransition("A", "left", "B"),
		domain.NewTransition("A", "right", "C"),
		domain.NewTransition("B", "back", "A"),
		domain.NewTransition("C", "back", "A"),
	)

	left := domain.NewWalk("A")
	left.Append(domain.NewTransition("A", "left", "B"))
	left.Append(domain.NewTransition("B", "back", "A"))

	right := domain.NewWalk("A")
	right.Append(domain.NewTransition("A", "right", "C"))

	r, err := coverage.Combined(m, []*domain.Walk{left, right})
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.States)
	assert.Equal(t, 75.0, r.Transitions)

	r, err = coverage.Combined(m, nil)
	require.NoError(t, err)
	assert.Equal(t, coverage.Report{}, r)
}
