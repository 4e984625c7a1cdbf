package harness

import "github.com/roach88/workday/internal/workday"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation held.
	Pass bool `json:"pass"`

	// Day is the allocated day. Nil when allocation failed.
	Day *workday.DayAtWork `json:"day,omitempty"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
