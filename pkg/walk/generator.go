package walk

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/errfix/pkg/coverage"
	"github.com/aretw0/errfix/pkg/domain"
)

// DefaultStepLimit is the step bound used when callers have no preference.
const DefaultStepLimit = 20

// MinStepLimit is the smallest step limit Generate accepts.
const MinStepLimit = 3

// Model is the read-only view of a state model the generator walks over.
// *model.Model satisfies it.
type Model interface {
	coverage.Model
	Occurrences(s domain.StateID) int
	Transitions(s domain.StateID) ([]domain.Transition, error)
}

// Generator produces random walks.
// A Generator holds no per-walk state and may be shared between goroutines.
type Generator struct {
	logger *slog.Logger
	hooks  domain.WalkHooks
	now    func() time.Time
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger sets the structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.WalkHooks) Option {
	return func(g *Generator) {
		g.hooks = g.hooks.Merge(hooks)
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Validate checks the preconditions of Generate without walking.
func Validate(m Model, start domain.StateID, stepLimit int) error {
	switch n := m.Occurrences(start); {
	case n == 0:
		return fmt.Errorf("start state %q is not in the model: %w", start, domain.ErrInvalidStartState)
	case n > 1:
		// Unreachable: the builder deduplicates states.
		return fmt.Errorf("start state %q appears %d times in the model: %w", start, n, domain.ErrInvalidStartState)
	}
	if stepLimit < MinStepLimit {
		return fmt.Errorf("step limit %d, need at least %d: %w", stepLimit, MinStepLimit, domain.ErrStepLimitTooLow)
	}
	return nil
}

// Generate walks m from start, taking at most stepLimit steps chosen with src.
//
// The walk stops early on a dead end, in which case EndState is that dead end.
// Coverage is computed before returning. If src is nil a randomly seeded source is used.
func (g *Generator) Generate(ctx context.Context, m Model, start domain.StateID, stepLimit int, src RandomSource) (*domain.Walk, error) {
	if err := Validate(m, start, stepLimit); err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w := domain.NewWalk(start)
	w.CreatedAt = g.now()
	current := start

	for w.Len() < stepLimit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		choices, err := m.Transitions(current)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", w.Len(), err)
		}
		if len(choices) == 0 {
			g.logger.Debug("dead end reached", "state", current, "steps", w.Len())
			g.hooks.EmitDeadEnd(ctx, &domain.DeadEndEvent{State: current, Steps: w.Len()})
			break
		}

		next := choices[src.IntN(len(choices))]
		w.Append(next)
		g.logger.Debug("step", "index", w.Len(), "from", next.Start, "action", next.Action, "to", next.End)
		g.hooks.EmitStep(ctx, &domain.StepEvent{Index: w.Len() - 1, Transition: next, Choices: len(choices)})
		current = next.End
	}
	w.EndState = current

	if err := coverage.Annotate(w, m); err != nil {
		return nil, err
	}

	g.logger.Info("walk complete",
		"start", w.StartState,
		"end", w.EndState,
		"steps", w.Len(),
		"state_coverage", fmt.Sprintf("%3.1f%%", w.StateCoverage),
		"transition_coverage", fmt.Sprintf("%3.1f%%", w.TransitionCoverage),
	)
	g.hooks.EmitWalkComplete(ctx, &domain.WalkEvent{Walk: w})
	return w, nil
}

// GenerateSeeded is Generate with a deterministic source for seed. The seed is recorded on the walk.
func (g *Generator) GenerateSeeded(ctx context.Context, m Model, start domain.StateID, stepLimit int, seed uint64) (*domain.Walk, error) {
	w, err := g.Generate(ctx, m, start, stepLimit, NewSeededSource(seed))
	if err != nil {
		return nil, err
	}
	w.Seed = &seed
	return w, nil
}
