package evaluator

import (
	"math/rand/v2"
)

// RandomSource yields uniform numbers in [0, 1) for measurement.
type RandomSource interface {
	Next() float64
}

// SeededSource is a deterministic PCG stream: the same seed replays the same outcomes.
type SeededSource struct {
	seed uint64
	rng  *rand.Rand
}

func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *SeededSource) Next() float64 { return s.rng.Float64() }
func (s *SeededSource) Seed() uint64  { return s.seed }

// FixedSource replays a fixed sequence, cycling when exhausted.
type FixedSource struct {
	Values []float64
	pos    int
}

func NewFixedSource(values ...float64) *FixedSource {
	return &FixedSource{Values: values}
}

func (f *FixedSource) Next() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.pos%len(f.Values)]
	f.pos++
	return v
}
