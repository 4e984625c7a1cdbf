package responsibility

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// DistributionKind selects the applicability rule of a Distribution.
type DistributionKind string

const (
	// Continuous applies on every date of the inclusive range [Alpha, Omega].
	Continuous DistributionKind = "Continuous"
	// Discrete applies only on the listed Dates.
	Discrete DistributionKind = "Discrete"
)

// EffortKind selects how an Effort value is interpreted.
type EffortKind string

const (
	// Absolute consumes a fixed quantity regardless of other responsibilities.
	Absolute EffortKind = "Absolute"
	// Relative shares the remaining effort in proportion to its weight.
	Relative EffortKind = "Relative"
)

// Distribution decides on which dates a responsibility applies.
// Alpha and Omega are set for Continuous, Dates for Discrete.
type Distribution struct {
	Kind  DistributionKind
	Alpha Date
	Omega Date
	Dates []Date
}

// Range returns a Continuous distribution over [alpha, omega].
func Range(alpha, omega Date) Distribution {
	return Distribution{Kind: Continuous, Alpha: alpha, Omega: omega}
}

// On returns a Discrete distribution over the given dates.
func On(dates ...Date) Distribution {
	return Distribution{Kind: Discrete, Dates: dates}
}

// AppliesOn reports whether the distribution selects date.
func (d Distribution) AppliesOn(date Date) bool {
	switch d.Kind {
	case Continuous:
		return !date.Before(d.Alpha) && !date.After(d.Omega)
	case Discrete:
		return slices.Contains(d.Dates, date)
	default:
		return false
	}
}

// Effort is the quantity rule of a responsibility. Value is the fixed
// quantity for Absolute and the weight for Relative.
type Effort struct {
	Kind  EffortKind
	Value float64
}

func AbsoluteEffort(value float64) Effort {
	return Effort{Kind: Absolute, Value: value}
}

func RelativeEffort(weight float64) Effort {
	return Effort{Kind: Relative, Value: weight}
}

// Responsibility is one named category of work.
type Responsibility struct {
	Account      string       `json:"account" yaml:"account"`
	Description  string       `json:"description" yaml:"description"`
	Distribution Distribution `json:"distribution" yaml:"distribution"`
	Effort       Effort       `json:"effort" yaml:"effort"`
}

// AppliesOn reports whether r takes part in the allocation of date.
func (r Responsibility) AppliesOn(date Date) bool {
	return r.Distribution.AppliesOn(date)
}

// Normalized returns r with its text fields in Unicode NFC, so that accounts
// typed with combining characters compare equal to precomposed ones.
func (r Responsibility) Normalized() Responsibility {
	r.Account = norm.NFC.String(r.Account)
	r.Description = norm.NFC.String(r.Description)
	return r
}
