package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/workday/internal/records"
	"github.com/roach88/workday/internal/responsibility"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool                             `json:"valid"`
	Records int                              `json:"records"`
	Errors  []responsibility.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <records-file>",
		Short: "Validate a record file without allocating",
		Long: `Validate responsibility records without allocating a day.

Parses the file, checks it against the record schema and reports every
invalid field rather than stopping at the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	// Decode only; validation errors are collected below, not joined.
	rs, err := records.Decode(path)
	if err != nil {
		return outputError(formatter, err, nil)
	}

	formatter.VerboseLog("Decoded %d record(s) from %s", len(rs), path)

	if errs := responsibility.ValidateAll(rs); len(errs) > 0 {
		return outputValidationErrors(formatter, len(rs), errs)
	}

	return outputValidateSuccess(formatter, len(rs))
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, count int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Records: count})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d record(s) valid\n", count)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, count int, errs []responsibility.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:   false,
				Records: count,
				Errors:  errs,
			},
			Error: &CLIError{
				Code:    ErrCodeSchema,
				Message: errs[0].Error(),
			},
			TraceID: formatter.TraceID,
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeSchema, err.Error())
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
