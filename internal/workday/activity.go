package workday

import (
	"math"

	"github.com/roach88/workday/internal/responsibility"
)

// roundingTolerance absorbs representation error when a value sits a hair
// below the midpoint between two resolution steps.
const roundingTolerance = 1e-9

// Activity is one resolved, rounded effort allocation.
type Activity struct {
	Account        string  `json:"account"`
	Description    string  `json:"description"`
	AbsoluteEffort float64 `json:"absolute_effort"`
}

// Resolve turns one responsibility into an Activity.
//
// Absolute efforts are taken as they are and jitter is ignored. Relative
// efforts become (weight + jitter) / totalWeight * balance. The caller
// guarantees totalWeight > 0 whenever r is relative and resolution > 0.
func Resolve(r responsibility.Responsibility, totalWeight, balance, jitter, resolution float64) Activity {
	var raw float64
	switch r.Effort.Kind {
	case responsibility.Relative:
		raw = (r.Effort.Value + jitter) / totalWeight * balance
	default:
		raw = r.Effort.Value
	}

	return Activity{
		Account:        r.Account,
		Description:    r.Description,
		AbsoluteEffort: Round(raw, resolution),
	}
}

// Round rounds value to the nearest multiple of resolution. Ties round up.
// Negative values also go to the nearest step, so -0.2 becomes -0.25 at
// resolution 0.25 and -0.125 becomes 0.
func Round(value, resolution float64) float64 {
	steps := value / resolution
	whole := math.Floor(steps)
	if steps-whole >= 0.5-roundingTolerance {
		whole++
	}
	if whole == 0 {
		// Avoid -0 in output.
		return 0
	}
	return whole * resolution
}
