package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/sdejongh/hashdiff/pkg/models"
)

// HumanFormatter renders differences as human-readable lines followed
// by a summary block
type HumanFormatter struct {
	writer     io.Writer
	colorize   bool
	totalPairs int
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(colorize bool) *HumanFormatter {
	return &HumanFormatter{colorize: colorize}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalPairs int) error {
	f.writer = writer
	f.totalPairs = totalPairs
	return nil
}

// Progress is a no-op for the plain human formatter
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete renders the difference lines and summary
func (f *HumanFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	for _, line := range Lines(report) {
		path := line.Path
		if path == "" {
			// Root-level verdict for a file-vs-file comparison
			path = report.PathA + " vs " + report.PathB
		}
		fmt.Fprintf(f.writer, "%s: %s", f.paint(line.Category), path)
		if line.Detail != "" {
			fmt.Fprintf(f.writer, " (%s)", line.Detail)
		}
		fmt.Fprintln(f.writer)
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Compared %s and %s in %s (%s)\n",
		report.PathA, report.PathB, report.Duration.Round(time.Millisecond), report.Algorithm)
	fmt.Fprintf(f.writer, "  Files compared:  %d\n", report.Stats.FilesCompared)
	fmt.Fprintf(f.writer, "  Dirs compared:   %d\n", report.Stats.DirsCompared)
	fmt.Fprintf(f.writer, "  Identical:       %d\n", report.Stats.Identical)
	fmt.Fprintf(f.writer, "  Size diffs:      %d\n", report.Stats.SizeDiffs)
	fmt.Fprintf(f.writer, "  Hash diffs:      %d\n", report.Stats.HashDiffs)
	fmt.Fprintf(f.writer, "  Type mismatches: %d\n", report.Stats.TypeMismatches)
	fmt.Fprintf(f.writer, "  Only in A:       %d\n", report.Stats.OnlyInA)
	fmt.Fprintf(f.writer, "  Only in B:       %d\n", report.Stats.OnlyInB)
	if report.Stats.Unreadable > 0 {
		fmt.Fprintf(f.writer, "  Unreadable:      %d\n", report.Stats.Unreadable)
	}
	fmt.Fprintf(f.writer, "  Bytes hashed:    %d\n", report.Stats.BytesHashed)
	fmt.Fprintf(f.writer, "Status: %s\n", f.paintStatus(report.Status))

	return nil
}

// Error reports a fatal error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

func (f *HumanFormatter) paint(category LineCategory) string {
	if !f.colorize {
		return string(category)
	}
	switch category {
	case CategoryOnlyInA:
		return color.GreenString(string(category))
	case CategoryOnlyInB:
		return color.CyanString(string(category))
	case CategorySizeDiff, CategoryHashDiff:
		return color.YellowString(string(category))
	case CategoryTypeMismatch, CategoryUnreadable:
		return color.RedString(string(category))
	default:
		return string(category)
	}
}

func (f *HumanFormatter) paintStatus(status models.RunStatus) string {
	if !f.colorize {
		return string(status)
	}
	switch status {
	case models.StatusClean:
		return color.GreenString(string(status))
	case models.StatusDifferences:
		return color.YellowString(string(status))
	default:
		return color.RedString(string(status))
	}
}
