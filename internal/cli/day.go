package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/workday/internal/jitter"
	"github.com/roach88/workday/internal/records"
	"github.com/roach88/workday/internal/report"
	"github.com/roach88/workday/internal/workday"
)

// DayOptions holds flags for the day command.
type DayOptions struct {
	*RootOptions
	Hours         float64
	Resolution    float64
	Seed          uint64
	MaxAttempts   int
	ReverseJitter bool
}

// NewDayCommand creates the day command.
func NewDayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "day <records-file> <YYYY-MM-DD>",
		Short: "Allocate the effort of one day",
		Long: `Allocate the effort of one day across the responsibilities that apply on it.

Records are read from YAML, JSON, CUE or a SQLite store written by "import".
Without --seed every run draws fresh jitter.

Exit codes:
  0 - Day allocated
  1 - Records failed validation
  2 - Command error (missing file, bad date, bad configuration)

Examples:
  workday day records.yaml 2023-01-01
  workday day records.cue 2023-01-01 --hours 7.5 --resolution 0.5
  workday day records.db 2023-01-01 --seed 42 --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDay(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Hours, "hours", workday.DefaultHours, "total nominal effort of the day")
	cmd.Flags().Float64Var(&opts.Resolution, "resolution", workday.DefaultResolution, "rounding resolution of efforts")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed the jitter for reproducible output")
	cmd.Flags().IntVar(&opts.MaxAttempts, "max-attempts", 0, "bound on jitter redraws (0 = unbounded)")
	cmd.Flags().BoolVar(&opts.ReverseJitter, "reverse-jitter", false, "pair jitter values with relative records last to first")

	return cmd
}

func runDay(opts *DayOptions, recordsPath, dateArg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	date, err := parseDate(formatter, dateArg)
	if err != nil {
		return err
	}

	rs, err := records.Load(recordsPath)
	if err != nil {
		return outputError(formatter, err, nil)
	}
	formatter.VerboseLog("Loaded %d record(s) from %s", len(rs), recordsPath)

	allocator := workday.NewAllocator(opts.Hours, opts.Resolution,
		workday.WithJitterer(jitter.New(newRand(opts, cmd), jitter.WithMaxAttempts(opts.MaxAttempts), jitter.WithLogger(logger))),
		workday.WithReversePairing(opts.ReverseJitter),
		workday.WithLogger(logger),
	)

	day, err := allocator.Allocate(date, rs)
	if err != nil {
		logger.Warn("allocation failed", zap.String("records", recordsPath), zap.Error(err))
		return outputError(formatter, err, nil)
	}

	if opts.Format == "json" {
		return formatter.Success(day)
	}
	return report.Text(formatter.Writer, day)
}

// newRand seeds from --seed when given, from the OS otherwise.
func newRand(opts *DayOptions, cmd *cobra.Command) *rand.Rand {
	if cmd.Flags().Changed("seed") {
		return rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
