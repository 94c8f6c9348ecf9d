package errfix_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/errfix"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/aretw0/errfix/pkg/walk"
)

// ExampleNew builds a model in memory and takes a deterministic walk over it.
func ExampleNew() {
	eng, err := errfix.New([]domain.Transition{
		domain.NewTransition("A", "go", "B"),
		domain.NewTransition("B", "go", "C"),
		domain.NewTransition("C", "go", "A"),
	})
	if err != nil {
		log.Fatal(err)
	}

	w, err := eng.Walk(context.Background(), "A", 3, walk.FixedSource(0))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(w)
	fmt.Printf("states %.1f%%, transitions %.1f%%\n", w.StateCoverage, w.TransitionCoverage)
	// Output:
	// Random Walk:
	// A,go => B,go => C,go => A,A
	// states 100.0%, transitions 100.0%
}
