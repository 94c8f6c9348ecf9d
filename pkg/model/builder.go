package model

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/errfix/pkg/domain"
)

// Builder turns transition records into a Model.
type Builder struct {
	logger *slog.Logger
}

// Option defines a functional option for configuring the Builder.
type Option func(*Builder)

// WithLogger sets the structured logger used to report normalisations such as duplicates.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a Builder. Without options it logs nothing.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs a Model from records, which must already be stripped of any header row.
//
// Zero records fail with domain.ErrEmptyInput. A single record is treated as a
// header-only table and fails with domain.ErrInsufficientInput. Exact duplicates are
// dropped (first occurrence wins) and logged, never reported as errors.
func (b *Builder) Build(records []domain.Transition) (*Model, error) {
	switch len(records) {
	case 0:
		return nil, fmt.Errorf("build model: %w", domain.ErrEmptyInput)
	case 1:
		return nil, fmt.Errorf("build model from a single record %q: %w", records[0], domain.ErrInsufficientInput)
	}

	transitions := domain.UniqueTransitions(records)
	if dups := len(records) - len(transitions); dups > 0 {
		b.logger.Debug("duplicate transitions dropped", "duplicates", dups, "records", len(records))
	}

	m := &Model{
		states:    extractStates(transitions),
		adjacency: make(map[domain.StateID][]domain.Transition),
	}
	for _, s := range m.states {
		m.adjacency[s] = []domain.Transition{}
	}
	for _, t := range transitions {
		m.adjacency[t.Start] = append(m.adjacency[t.Start], t)
	}

	b.logger.Debug("model built",
		"states", len(m.states),
		"transitions", len(transitions),
		"dead_ends", len(m.DeadEnds()),
	)
	return m, nil
}

// extractStates lists every state once, visiting each transition's end state before its start state.
func extractStates(transitions []domain.Transition) []domain.StateID {
	seen := make(map[domain.StateID]struct{})
	var states []domain.StateID
	for _, t := range transitions {
		for _, s := range [2]domain.StateID{t.End, t.Start} {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			states = append(states, s)
		}
	}
	return states
}
