package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/workday/internal/records"
	"github.com/roach88/workday/internal/responsibility"
	"github.com/roach88/workday/internal/workday"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeUnsupported = "E002" // Unsupported record source
	ErrCodeNoRecords   = "E003" // Record file holds no records
	ErrCodeParseFailed = "E004" // Record file could not be parsed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeSchema      = "E006" // Schema or record validation failed
	ErrCodeWriteFailed = "E007" // Store write error
	ErrCodeBadDate     = "E008" // Date is not YYYY-MM-DD
	ErrCodeConfig      = "E009" // Allocation configuration error
)

// commandError pairs an error code with the exit code it maps to.
type commandError struct {
	code     string
	exitCode int
}

// classify maps library errors onto error codes and exit codes.
// Broken input (paths, syntax, configuration) is a command error.
// Records that parse but break the rules are a validation failure.
func classify(err error) commandError {
	var loadErr *records.LoadError
	if errors.As(err, &loadErr) {
		switch loadErr.Kind {
		case records.KindNotFound:
			return commandError{ErrCodeNotFound, ExitCommandError}
		case records.KindUnsupported:
			return commandError{ErrCodeUnsupported, ExitCommandError}
		case records.KindParse:
			return commandError{ErrCodeParseFailed, ExitCommandError}
		case records.KindEmpty:
			return commandError{ErrCodeNoRecords, ExitCommandError}
		case records.KindSchema, records.KindInvalid:
			return commandError{ErrCodeSchema, ExitFailure}
		}
	}

	var configErr *workday.ConfigError
	if errors.As(err, &configErr) {
		return commandError{ErrCodeConfig, ExitCommandError}
	}

	return commandError{ErrCodeGeneric, ExitFailure}
}

// outputError reports err through the formatter and returns the matching
// ExitError.
func outputError(formatter *OutputFormatter, err error, details interface{}) error {
	ce := classify(err)
	_ = formatter.Error(ce.code, err.Error(), details)
	return WrapExitError(ce.exitCode, ce.code, err)
}

// parseDate parses a command line date and reports E008 on failure.
func parseDate(formatter *OutputFormatter, s string) (responsibility.Date, error) {
	date, err := responsibility.ParseDate(s)
	if err != nil {
		_ = formatter.Error(ErrCodeBadDate, err.Error(), nil)
		return responsibility.Date{}, NewExitError(ExitCommandError, fmt.Sprintf("%s: %v", ErrCodeBadDate, err))
	}
	return date, nil
}
