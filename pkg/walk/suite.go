package walk

import (
	"context"
	"fmt"

	"github.com/aretw0/errfix/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// SuiteOptions configures Suite.
type SuiteOptions struct {
	Start     domain.StateID
	StepLimit int
	// Count is the number of walks to generate. Values below 1 produce one walk.
	Count int
	// Seed is the seed of the first walk; walk i uses Seed+i.
	Seed uint64
	// Parallelism bounds the number of walks generated at once. 0 means no limit.
	Parallelism int
}

// Suite generates opts.Count seeded walks concurrently and returns them in seed order.
// Each walk has its own random source, so the result does not depend on scheduling.
func (g *Generator) Suite(ctx context.Context, m Model, opts SuiteOptions) ([]*domain.Walk, error) {
	if err := Validate(m, opts.Start, opts.StepLimit); err != nil {
		return nil, err
	}
	count := max(opts.Count, 1)

	walks := make([]*domain.Walk, count)
	eg, ctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		eg.SetLimit(opts.Parallelism)
	}
	for i := range count {
		seed := opts.Seed + uint64(i)
		eg.Go(func() error {
			w, err := g.GenerateSeeded(ctx, m, opts.Start, opts.StepLimit, seed)
			if err != nil {
				return fmt.Errorf("walk %d (seed %d): %w", i, seed, err)
			}
			walks[i] = w
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return walks, nil
}
