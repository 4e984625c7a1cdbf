package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/workday/internal/records"
	"github.com/roach88/workday/internal/responsibility"
	"github.com/roach88/workday/internal/store"
)

// ImportResult reports a finished import.
type ImportResult struct {
	Source   string `json:"source"`
	Database string `json:"database"`
	Records  int    `json:"records"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <records-file> <db-file>",
		Short: "Copy records into a SQLite store",
		Long: `Load and validate records from any supported source and write them to a
SQLite store. The store's previous records are replaced; order is kept.

Examples:
  workday import records.yaml workday.db
  workday day workday.db 2023-01-01`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, source, dbPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	rs, err := records.Load(source)
	if err != nil {
		return outputError(formatter, err, nil)
	}

	stored, err := writeStore(cmd.Context(), dbPath, rs, logger)
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
	}

	result := ImportResult{Source: source, Database: dbPath, Records: stored}
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Imported %d record(s) into %s\n", result.Records, dbPath)
	return nil
}

// writeStore replaces the records in dbPath and returns how many the store
// now holds.
func writeStore(ctx context.Context, dbPath string, rs []responsibility.Responsibility, logger *zap.Logger) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	if err := st.Replace(ctx, rs); err != nil {
		return 0, err
	}
	stored, err := st.Count(ctx)
	if err != nil {
		return 0, err
	}
	if stored != len(rs) {
		return 0, fmt.Errorf("store holds %d record(s) after writing %d", stored, len(rs))
	}
	logger.Info("records imported", zap.String("database", dbPath), zap.Int("records", stored))
	return stored, nil
}
