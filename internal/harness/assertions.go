package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/workday/internal/workday"
)

// effortTolerance absorbs float noise when comparing rounded efforts.
const effortTolerance = 1e-9

// checkError records whether an allocation error was the expected one.
func checkError(result *Result, expect Expectation, err error) {
	if expect.Error == "" {
		result.AddError(fmt.Sprintf("unexpected allocation error: %v", err))
		return
	}
	if !strings.Contains(err.Error(), expect.Error) {
		result.AddError(fmt.Sprintf("expected error containing %q, got %q", expect.Error, err.Error()))
	}
}

// checkDay evaluates every expectation against day and returns the failures.
func checkDay(day workday.DayAtWork, expect Expectation) []string {
	var failures []string

	if expect.Error != "" {
		failures = append(failures, fmt.Sprintf("expected error containing %q, allocation succeeded", expect.Error))
	}

	if expect.TotalEffort != nil && !closeTo(day.TotalEffort, *expect.TotalEffort) {
		failures = append(failures, fmt.Sprintf("total_effort: expected %g, got %g", *expect.TotalEffort, day.TotalEffort))
	}

	if expect.ActivityCount != nil && len(day.Activities) != *expect.ActivityCount {
		failures = append(failures, fmt.Sprintf("activity_count: expected %d, got %d", *expect.ActivityCount, len(day.Activities)))
	}

	for i, want := range expect.Activities {
		got, ok := findActivity(day.Activities, want)
		if !ok {
			failures = append(failures, fmt.Sprintf("activities[%d]: no activity for account %q", i, want.Account))
			continue
		}
		if want.AbsoluteEffort != nil && !closeTo(got.AbsoluteEffort, *want.AbsoluteEffort) {
			failures = append(failures, fmt.Sprintf("activities[%d] %q: expected effort %g, got %g",
				i, want.Account, *want.AbsoluteEffort, got.AbsoluteEffort))
		}
	}

	return failures
}

// findActivity returns the first activity matching account and, when set,
// description.
func findActivity(activities []workday.Activity, want ExpectedActivity) (workday.Activity, bool) {
	for _, a := range activities {
		if a.Account != want.Account {
			continue
		}
		if want.Description != "" && a.Description != want.Description {
			continue
		}
		return a, true
	}
	return workday.Activity{}, false
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= effortTolerance
}
