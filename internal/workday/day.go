package workday

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/roach88/workday/internal/jitter"
	"github.com/roach88/workday/internal/responsibility"
)

// Defaults for a standard working day.
const (
	DefaultHours      = 8.0
	DefaultResolution = 0.25
)

// DayAtWork is the allocation of one date.
type DayAtWork struct {
	Date        responsibility.Date `json:"date"`
	Activities  []Activity          `json:"activities"`
	TotalEffort float64             `json:"total_effort"`
}

// Jitterer perturbs relative weights. Output must have the length of source.
type Jitterer interface {
	Jitter(source []float64) ([]float64, error)
}

// Allocator distributes a fixed nominal effort per day.
type Allocator struct {
	hours      float64
	resolution float64
	jitter     Jitterer
	reverse    bool
	logger     *zap.Logger
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithJitterer replaces the default OS-seeded jitter.
func WithJitterer(j Jitterer) Option {
	return func(a *Allocator) { a.jitter = j }
}

// WithReversePairing hands jitter values to relative responsibilities last
// to first. Positional pairing is the default.
func WithReversePairing(reverse bool) Option {
	return func(a *Allocator) { a.reverse = reverse }
}

// WithLogger sets the logger used for allocation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Allocator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAllocator creates an allocator distributing hours per day, rounded to
// resolution.
func NewAllocator(hours, resolution float64, opts ...Option) *Allocator {
	a := &Allocator{
		hours:      hours,
		resolution: resolution,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.jitter == nil {
		a.jitter = jitter.New(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), jitter.WithLogger(a.logger))
	}
	return a
}

// Allocate computes the day at work for date.
//
// Responsibilities are processed in input order and the resulting activities
// keep that order. Records that do not apply on date are skipped before any
// aggregation.
func (a *Allocator) Allocate(date responsibility.Date, rs []responsibility.Responsibility) (DayAtWork, error) {
	if err := a.check(); err != nil {
		return DayAtWork{}, err
	}

	selected := make([]responsibility.Responsibility, 0, len(rs))
	for _, r := range rs {
		if r.AppliesOn(date) {
			selected = append(selected, r)
		}
	}

	balance := a.hours
	var totalWeight float64
	var weights []float64
	for _, r := range selected {
		switch r.Effort.Kind {
		case responsibility.Absolute:
			balance -= r.Effort.Value
		case responsibility.Relative:
			totalWeight += r.Effort.Value
			weights = append(weights, r.Effort.Value)
		}
	}

	if len(weights) > 0 && !(totalWeight > 0) {
		return DayAtWork{}, &ConfigError{
			Field:   "weights",
			Message: "total relative weight must be positive when relative responsibilities apply",
		}
	}

	deltas, err := a.deltas(weights)
	if err != nil {
		return DayAtWork{}, err
	}

	day := DayAtWork{
		Date:       date,
		Activities: make([]Activity, 0, len(selected)),
	}
	next := 0
	for _, r := range selected {
		var delta float64
		if r.Effort.Kind == responsibility.Relative {
			delta = deltas[next]
			next++
		}
		activity := Resolve(r, totalWeight, balance, delta, a.resolution)
		day.TotalEffort += activity.AbsoluteEffort
		day.Activities = append(day.Activities, activity)
	}

	a.logger.Debug("day allocated",
		zap.Stringer("date", date),
		zap.Int("selected", len(selected)),
		zap.Int("relative", len(weights)),
		zap.Float64("balance", balance),
		zap.Float64("total", day.TotalEffort))
	if balance < 0 {
		a.logger.Warn("absolute efforts exceed the day",
			zap.Stringer("date", date),
			zap.Float64("balance", balance))
	}

	return day, nil
}

// deltas jitters weights and returns each weight's offset, in the order the
// relative responsibilities will consume them.
func (a *Allocator) deltas(weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, nil
	}
	jittered, err := a.jitter.Jitter(weights)
	if err != nil {
		return nil, fmt.Errorf("jitter relative weights: %w", err)
	}
	if len(jittered) != len(weights) {
		return nil, fmt.Errorf("jitter returned %d values for %d weights", len(jittered), len(weights))
	}

	deltas := make([]float64, len(weights))
	for i := range weights {
		deltas[i] = jittered[i] - weights[i]
	}
	if a.reverse {
		slices.Reverse(deltas)
	}
	return deltas, nil
}

func (a *Allocator) check() error {
	if math.IsNaN(a.resolution) || math.IsInf(a.resolution, 0) || a.resolution <= 0 {
		return &ConfigError{Field: "resolution", Message: "must be a finite positive number"}
	}
	if math.IsNaN(a.hours) || math.IsInf(a.hours, 0) {
		return &ConfigError{Field: "hours", Message: "must be a finite number"}
	}
	return nil
}
