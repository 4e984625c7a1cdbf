package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/workday/internal/records"
	"github.com/roach88/workday/internal/responsibility"
)

// Scenario defines one allocation check.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Records is the record file to allocate from.
	// Relative paths are resolved against the scenario file's directory.
	Records string `yaml:"records"`

	// Date is the day to allocate, YYYY-MM-DD.
	Date string `yaml:"date"`

	// Hours and Resolution default to workday.DefaultHours and
	// workday.DefaultResolution.
	Hours      *float64 `yaml:"hours,omitempty"`
	Resolution *float64 `yaml:"resolution,omitempty"`

	// Seed feeds the jitter generator. Nil means DefaultSeed.
	Seed *uint64 `yaml:"seed,omitempty"`

	// ReversePairing hands jitter values to relative records last to first.
	ReversePairing bool `yaml:"reverse_pairing,omitempty"`

	// Expect describes the day the allocation must produce.
	Expect Expectation `yaml:"expect"`
}

// DefaultSeed is used when a scenario does not set one.
const DefaultSeed uint64 = 1

// Expectation validates the allocated day.
type Expectation struct {
	// TotalEffort is the expected day total.
	TotalEffort *float64 `yaml:"total_effort,omitempty"`

	// ActivityCount is the expected number of activities.
	ActivityCount *int `yaml:"activity_count,omitempty"`

	// Activities are matched by account (and description when given).
	// This is a subset match - unlisted activities are not checked.
	Activities []ExpectedActivity `yaml:"activities,omitempty"`

	// Error, when set, is a substring of the expected allocation error.
	Error string `yaml:"error,omitempty"`
}

// ExpectedActivity is one expected activity of the day.
type ExpectedActivity struct {
	Account        string   `yaml:"account"`
	Description    string   `yaml:"description,omitempty"`
	AbsoluteEffort *float64 `yaml:"absolute_effort,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "expects:" vs "expect:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Records != "" && !filepath.IsAbs(scenario.Records) {
		scenario.Records = filepath.Join(filepath.Dir(path), scenario.Records)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Records == "" {
		return fmt.Errorf("records is required")
	}
	if _, err := os.Stat(s.Records); os.IsNotExist(err) {
		return fmt.Errorf("records file not found: %s", s.Records)
	}
	if !records.Supported(s.Records) {
		return fmt.Errorf("records file %s is not a supported source", s.Records)
	}

	if _, err := responsibility.ParseDate(s.Date); err != nil {
		return fmt.Errorf("date: %w", err)
	}

	e := s.Expect
	if e.TotalEffort == nil && e.ActivityCount == nil && len(e.Activities) == 0 && e.Error == "" {
		return fmt.Errorf("expect must state at least one of total_effort, activity_count, activities, error")
	}
	if e.ActivityCount != nil && *e.ActivityCount < 0 {
		return fmt.Errorf("expect.activity_count must be non-negative")
	}
	for i, a := range e.Activities {
		if a.Account == "" {
			return fmt.Errorf("expect.activities[%d]: account is required", i)
		}
	}

	return nil
}
