// Package jitter perturbs relative weights without changing their sum.
//
// Each value receives a uniform random offset in [-m, m], where m is the
// smallest source value. Offsets are shifted by their mean so they cancel
// out, and the whole draw is repeated whenever that shift pushes any offset
// outside [-m, m]. The output therefore always sums to the source sum (within
// floating tolerance) and no value moves by more than m.
//
// The redraw loop has no natural bound: for adversarial inputs it may spin
// for a long time. WithMaxAttempts caps it when that matters.
package jitter

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
)

// ErrAttemptsExhausted is returned when every allowed draw violated the bound.
var ErrAttemptsExhausted = errors.New("jitter: attempts exhausted")

// Jitterer draws perturbations from an injected random generator.
//
// A Jitterer is not safe for concurrent use because *rand.Rand is not.
type Jitterer struct {
	rng         *rand.Rand
	maxAttempts int
	logger      *zap.Logger
}

// Option configures a Jitterer.
type Option func(*Jitterer)

// WithMaxAttempts bounds the number of draws. n <= 0 means unbounded.
func WithMaxAttempts(n int) Option {
	return func(j *Jitterer) { j.maxAttempts = n }
}

// WithLogger sets the logger used to report redraws.
func WithLogger(logger *zap.Logger) Option {
	return func(j *Jitterer) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// New creates a Jitterer drawing from rng.
func New(rng *rand.Rand, opts ...Option) *Jitterer {
	j := &Jitterer{rng: rng, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Jitter returns a perturbed copy of source with the same length and sum.
//
// Empty input yields empty output. When the smallest source value is not
// positive there is no bound to draw from and source is returned unchanged.
func (j *Jitterer) Jitter(source []float64) ([]float64, error) {
	out := make([]float64, len(source))
	copy(out, source)
	if len(source) == 0 {
		return out, nil
	}

	bound := slices.Min(source)
	if !(bound > 0) {
		return out, nil
	}

	offsets := make([]float64, len(source))
	for attempt := 1; ; attempt++ {
		if j.draw(bound, offsets) {
			for i := range out {
				out[i] += offsets[i]
			}
			return out, nil
		}

		if j.maxAttempts > 0 && attempt >= j.maxAttempts {
			j.logger.Warn("jitter bound never satisfied",
				zap.Int("attempts", attempt),
				zap.Float64("bound", bound),
				zap.Int("values", len(source)))
			return nil, fmt.Errorf("%w: %d draws over %d values with bound %g", ErrAttemptsExhausted, attempt, len(source), bound)
		}
		j.logger.Debug("jitter redraw",
			zap.Int("attempt", attempt),
			zap.Float64("bound", bound))
	}
}

// draw fills offsets with mean-corrected uniform offsets and reports whether
// every corrected offset stayed within [-bound, bound].
func (j *Jitterer) draw(bound float64, offsets []float64) bool {
	var sum float64
	for i := range offsets {
		offsets[i] = bound * (2*j.rng.Float64() - 1)
		sum += offsets[i]
	}

	correction := sum / float64(len(offsets))
	for i := range offsets {
		offsets[i] -= correction
		if math.Abs(offsets[i]) > bound {
			return false
		}
	}
	return true
}

// Jitter perturbs source with rng and never gives up redrawing.
func Jitter(rng *rand.Rand, source []float64) []float64 {
	// Unbounded draws cannot fail.
	out, _ := New(rng).Jitter(source)
	return out
}
