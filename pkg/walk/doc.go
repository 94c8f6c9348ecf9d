/*
Package walk generates random walks over a state model.

A walk starts at a given state and repeatedly picks one of the current state's
outgoing transitions uniformly at random, until it either reaches a dead end or
has taken the requested number of steps. The finished walk carries its state and
transition coverage.

Randomness is always injected, so a walk is reproducible from its seed:

	g := walk.New(walk.WithLogger(logger))
	w, err := g.Generate(ctx, m, "Idle", 20, walk.NewSeededSource(42))

Suite generates several walks concurrently, each one with its own seeded source.
*/
package walk
