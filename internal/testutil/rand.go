package testutil

import (
	"math/rand/v2"
	"sync"
)

// FloatSource is a rand.Source that replays fixed draws in [0, 1).
//
// rand.Rand.Float64 maps a source value v to float64(v<<11>>11) / (1<<53),
// so each replayed value is returned exactly by Float64 as long as it is a
// multiple of 2^-53 (0.5, 0.25, 31.0/32 and so on).
//
// Draws wrap around once exhausted.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FloatSource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewFloatSource creates a source replaying values in order.
//
// Panics if values is empty or a value lies outside [0, 1).
func NewFloatSource(values ...float64) *FloatSource {
	if len(values) == 0 {
		panic("testutil: FloatSource needs at least one value")
	}
	for _, v := range values {
		if v < 0 || v >= 1 {
			panic("testutil: FloatSource values must lie in [0, 1)")
		}
	}
	return &FloatSource{values: values}
}

// Uint64 implements rand.Source.
func (s *FloatSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return uint64(v * (1 << 53))
}

// Draws returns how many values have been consumed.
func (s *FloatSource) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// NewRand returns a generator whose Float64 calls replay values.
func NewRand(values ...float64) *rand.Rand {
	return rand.New(NewFloatSource(values...))
}
