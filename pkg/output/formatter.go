package output

import (
	"io"

	"github.com/sdejongh/hashdiff/pkg/models"
)

// ProgressUpdate reports completion of file pairings during a run
type ProgressUpdate struct {
	Completed int
	Total     int
}

// Formatter defines the interface for output formatting.
// Implementations include human-readable, JSON, and progress-bar formatters.
type Formatter interface {
	// Start initializes the formatter for a new comparison run.
	// totalPairs is the number of file pairings that will be resolved;
	// it may be zero, e.g. when the two roots mismatch in type.
	Start(writer io.Writer, totalPairs int) error

	// Progress reports progress while pairings resolve
	Progress(update ProgressUpdate) error

	// Complete renders the finished report
	Complete(report *models.Report) error

	// Error reports a fatal error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
