// Package noise provides the seeded pseudo-random values used for jitter.
//
// Every value is a pure function of (seed, index), so repeated generations
// with the same seed produce identical output.
package noise

import "math"

// Hash mixes seed and index into a well-distributed 64-bit value (splitmix64).
func Hash(seed int64, i int) uint64 {
	z := uint64(seed) + uint64(i+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Float returns a value in [0, 1).
func Float(seed int64, i int) float64 {
	return float64(Hash(seed, i)>>11) / (1 << 53)
}

// Signed returns a value in [-1, 1).
func Signed(seed int64, i int) float64 {
	return Float(seed, i)*2 - 1
}

// Amplitude returns a per-index amplitude factor in [0.5, 1].
func Amplitude(seed int64, i int) float64 {
	return 0.5 + 0.5*Float(seed^0x5bd1e995, i)
}

// Phase returns a per-index phase offset in [0, 2π).
func Phase(seed int64, i int) float64 {
	return Float(seed^0x1b873593, i) * 2 * math.Pi
}

// Mix folds extra integers into a seed, e.g. a letter index and position.
func Mix(seed int64, parts ...int64) int64 {
	h := uint64(seed)
	for i, p := range parts {
		h = Hash(int64(h)^p, i)
	}
	return int64(h)
}

// Stream is a sequence of values drawn from one seed.
type Stream struct {
	seed int64
	n    int
}

func New(seed int64) *Stream {
	return &Stream{seed: seed}
}

func (s *Stream) Float() float64 {
	v := Float(s.seed, s.n)
	s.n++
	return v
}

func (s *Stream) Signed() float64 {
	return s.Float()*2 - 1
}
