package walk

import "math/rand/v2"

// RandomSource picks indexes for the generator. *rand.Rand satisfies it.
type RandomSource interface {
	// IntN returns a uniformly distributed number in [0, n). n is always > 0.
	IntN(n int) int
}

// NewSeededSource returns a deterministic source for seed.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FixedSource always returns the same index, clamped to the number of choices.
type FixedSource int

func (f FixedSource) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	if f < 0 {
		return 0
	}
	return int(f)
}

// SequenceSource returns its indexes in order, wrapping around, each clamped to
// the number of choices. An empty sequence always returns 0.
type SequenceSource struct {
	Indexes []int
	pos     int
}

func (s *SequenceSource) IntN(n int) int {
	if len(s.Indexes) == 0 {
		return 0
	}
	i := s.Indexes[s.pos%len(s.Indexes)]
	s.pos++
	return FixedSource(i).IntN(n)
}
