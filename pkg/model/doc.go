/*
Package model builds the finite-state model of a system under test from an
ordered list of (start, action, end) transitions.

The Builder deduplicates the input, derives the set of states and the
adjacency lists; the resulting Model is read-only and safe to share between
goroutines.

	m, err := model.NewBuilder(model.WithLogger(logger)).Build([]domain.Transition{
	    domain.NewTransition("A", "go", "B"),
	    domain.NewTransition("B", "go", "A"),
	})

State order is the first-occurrence order obtained by visiting, for every
transition, its end state before its start state. Describe and the graph
exporters iterate in that order, so output is reproducible.
*/
package model
