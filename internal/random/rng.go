// Package random provides the seeded number stream used to sample question
// parameters. Streams are reproducible: the same seed always yields the same
// sequence of draws.
package random

// mulberryIncrement is the odd constant added to the state on every draw.
const mulberryIncrement = 0x6D2B79F5

// Source is a Mulberry32 generator. A Source is not safe for concurrent use;
// every instantiation builds its own.
type Source struct {
	state uint32
}

// New returns a fresh stream seeded with seed. Only the low 32 bits of the
// seed participate, matching the 32-bit state of the generator.
func New(seed int64) *Source {
	return &Source{state: uint32(seed)}
}

// Float64 advances the stream and returns a value in [0, 1).
func (s *Source) Float64() float64 {
	s.state += mulberryIncrement
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Func adapts the stream to a plain generator function.
func (s *Source) Func() func() float64 {
	return s.Float64
}

// Seeded returns a generator function over a new stream for seed.
func Seeded(seed int64) func() float64 {
	return New(seed).Func()
}

// Intn returns a value in [0, n) drawn from the stream. n must be positive.
func (s *Source) Intn(n int) int {
	return int(s.Float64() * float64(n))
}

// Shuffle permutes n elements in place with a Fisher-Yates pass.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
