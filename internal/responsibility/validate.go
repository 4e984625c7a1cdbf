package responsibility

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError describes one invalid field of one record.
type ValidationError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("responsibilities[%d].%s: %s", e.Index, e.Field, e.Message)
}

// Validate checks a single record. index is only used to label errors.
// Returns all errors found (does not fail-fast).
func Validate(index int, r Responsibility) []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Index: index, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(r.Account) == "" {
		add("account", "account is required")
	}

	switch r.Distribution.Kind {
	case Continuous:
		if r.Distribution.Alpha.IsZero() || r.Distribution.Omega.IsZero() {
			add("distribution", "alpha and omega are required")
		} else if r.Distribution.Alpha.After(r.Distribution.Omega) {
			add("distribution", "alpha %s is after omega %s", r.Distribution.Alpha, r.Distribution.Omega)
		}
	case Discrete:
		if len(r.Distribution.Dates) == 0 {
			add("distribution", "at least one date is required")
		}
	default:
		add("distribution", "unknown distribution type %q", r.Distribution.Kind)
	}

	v := r.Effort.Value
	switch r.Effort.Kind {
	case Absolute:
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			add("effort", "absolute value must be a finite non-negative number, got %v", v)
		}
	case Relative:
		// A non-positive weight leaves the jitter without a usable bound.
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			add("effort", "relative weight must be a finite positive number, got %v", v)
		}
	default:
		add("effort", "unknown effort type %q", r.Effort.Kind)
	}

	return errs
}

// ValidateAll checks every record and returns all errors in record order.
func ValidateAll(rs []Responsibility) []ValidationError {
	var errs []ValidationError
	for i, r := range rs {
		errs = append(errs, Validate(i, r)...)
	}
	return errs
}
