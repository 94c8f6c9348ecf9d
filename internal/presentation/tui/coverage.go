package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/errfix/pkg/domain"
	"github.com/muesli/termenv"
)

// Coverage thresholds for colouring percentages.
const (
	GoodCoverage = 75.0
	FairCoverage = 40.0
)

// Styler colours coverage figures for a terminal profile.
type Styler struct {
	profile termenv.Profile
}

// NewStyler detects the colour profile of out. Non-terminals get plain text.
func NewStyler(out io.Writer) *Styler {
	return &Styler{profile: termenv.NewOutput(out).Profile}
}

// PlainStyler never colours.
func PlainStyler() *Styler {
	return &Styler{profile: termenv.Ascii}
}

// Percent formats p with one decimal, green, yellow or red depending on the thresholds.
func (s *Styler) Percent(p float64) string {
	text := fmt.Sprintf("%5.1f%%", p)
	color := "#ef4444"
	switch {
	case p >= GoodCoverage:
		color = "#22c55e"
	case p >= FairCoverage:
		color = "#eab308"
	}
	return termenv.String(text).Foreground(s.profile.Color(color)).String()
}

// PrintWalk writes a walk followed by its coverage.
func (s *Styler) PrintWalk(out io.Writer, w *domain.Walk) {
	fmt.Fprint(out, w.String())
	if w.Seed != nil {
		fmt.Fprintf(out, "\tSeed: %d\n", *w.Seed)
	}
	fmt.Fprintf(out, "\tSteps: %d\n", w.Len())
	if w.Measured {
		fmt.Fprintf(out, "\tState coverage: %s\n", s.Percent(w.StateCoverage))
		fmt.Fprintf(out, "\tTransition coverage: %s\n", s.Percent(w.TransitionCoverage))
	}
}
