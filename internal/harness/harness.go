package harness

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/roach88/workday/internal/jitter"
	"github.com/roach88/workday/internal/records"
	"github.com/roach88/workday/internal/responsibility"
	"github.com/roach88/workday/internal/workday"
)

// Harness is the scenario execution engine.
// Every run gets its own generator seeded from the scenario.
type Harness struct {
	logger *zap.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger routes allocator and jitter logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a harness.
func New(opts ...Option) *Harness {
	h := &Harness{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Errors that prevent the scenario from running at all (unreadable records,
// bad date) are returned as err. Allocation errors are matched against
// expect.error and otherwise recorded as a failed expectation.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	date, err := responsibility.ParseDate(scenario.Date)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	rs, err := records.Load(scenario.Records)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	seed := DefaultSeed
	if scenario.Seed != nil {
		seed = *scenario.Seed
	}
	logger := h.logger.With(zap.String("scenario", scenario.Name))
	rng := rand.New(rand.NewPCG(seed, seed))

	allocator := workday.NewAllocator(
		valueOr(scenario.Hours, workday.DefaultHours),
		valueOr(scenario.Resolution, workday.DefaultResolution),
		workday.WithJitterer(jitter.New(rng, jitter.WithLogger(logger))),
		workday.WithReversePairing(scenario.ReversePairing),
		workday.WithLogger(logger),
	)

	result := NewResult()
	day, err := allocator.Allocate(date, rs)
	if err != nil {
		checkError(result, scenario.Expect, err)
		return result, nil
	}
	result.Day = &day

	for _, msg := range checkDay(day, scenario.Expect) {
		result.AddError(msg)
	}
	return result, nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
