package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/hashdiff/internal/platform"
	"github.com/sdejongh/hashdiff/pkg/config"
	"github.com/sdejongh/hashdiff/pkg/diff"
	"github.com/sdejongh/hashdiff/pkg/digest"
	"github.com/sdejongh/hashdiff/pkg/logging"
	"github.com/sdejongh/hashdiff/pkg/output"
	"github.com/sdejongh/hashdiff/pkg/ratelimit"
	"github.com/sdejongh/hashdiff/pkg/storage"
)

// CompareFlags holds compare command flag values
type CompareFlags struct {
	Algorithm    string
	Workers      int
	Exclude      []string
	Output       string
	NoProgress   bool
	ReportFile   string
	ReportFormat string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <pathA> <pathB>",
		Short: "Compare two files or directory trees",
		Long: `Compare two filesystem paths and report how they differ.
Both paths must be files, or both directories. Files are compared by
size first, then by content digest; directories are compared recursively.
The comparison is read-only: nothing is ever copied, repaired, or deleted.

Exit status is 0 when no differences were found, 1 when differences were
found, and 2 when one or more entries could not be read.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().StringVar(&compareFlags.Algorithm, "algorithm", "", "digest algorithm: md5, sha1, sha256")
	cmd.Flags().IntVar(&compareFlags.Workers, "workers", 0, "number of parallel file comparisons")
	cmd.Flags().StringSliceVar(&compareFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().BoolVar(&compareFlags.NoProgress, "no-progress", false, "disable the progress bar")
	cmd.Flags().StringVar(&compareFlags.ReportFile, "report", "", "write the report to a file")
	cmd.Flags().StringVar(&compareFlags.ReportFormat, "report-format", "human", "report file format: human, json")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pathA := platform.NormalizePath(args[0])
	pathB := platform.NormalizePath(args[1])

	if err := validateComparePaths(pathA, pathB); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	algorithm, err := digest.ParseAlgorithm(cfg.Compare.Algorithm)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	backend := storage.NewLocal()
	defer backend.Close()

	engine := digest.NewEngine(backend, algorithm, cfg.Performance.BufferSize)
	if limiter := ratelimit.NewLimiter(cfg.Performance.BandwidthLimit); limiter != nil {
		engine.SetReaderWrapper(func(r io.Reader) io.Reader {
			return ratelimit.NewReader(r, limiter)
		})
	}

	formatter := newFormatter(cfg)

	comparator := diff.NewComparator(backend, engine, diff.Options{
		MaxWorkers:      cfg.Performance.MaxWorkers,
		ExcludePatterns: cfg.Exclude,
		Logger:          logger,
		OnStart: func(totalPairs int) {
			formatter.Start(os.Stdout, totalPairs)
		},
		Progress: func(completed, total int) {
			formatter.Progress(output.ProgressUpdate{Completed: completed, Total: total})
		},
	})

	report, err := comparator.Compare(ctx, pathA, pathB)
	if err != nil {
		formatter.Error(err)
		return err
	}

	if !cfg.Output.Quiet {
		if err := formatter.Complete(report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	if compareFlags.ReportFile != "" {
		if err := output.WriteReportFile(report, compareFlags.ReportFile, compareFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// newLogger builds the logger configured in cfg
func newLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NewNullLogger(), nil
	}

	format := logging.Format(cfg.Logging.Format)
	level := logging.ParseLevel(cfg.Logging.Level)

	if cfg.Logging.File != "" {
		return logging.NewFileLogger(cfg.Logging.File, format, level)
	}
	return logging.NewWriterLogger(os.Stderr, format, level), nil
}

// newFormatter builds the output formatter configured in cfg
func newFormatter(cfg *config.Config) output.Formatter {
	if cfg.Output.Format == "json" {
		return output.NewJSONFormatter()
	}
	if cfg.Output.Progress {
		return output.NewProgressFormatter(cfg.Output.Color)
	}
	return output.NewHumanFormatter(cfg.Output.Color)
}
