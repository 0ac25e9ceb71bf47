package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/hashdiff/pkg/models"
)

// JSONFormatter renders the report as JSON for automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// jsonReport is the machine-readable report envelope
type jsonReport struct {
	RunID          string            `json:"run_id"`
	PathA          string            `json:"path_a"`
	PathB          string            `json:"path_b"`
	Algorithm      string            `json:"algorithm"`
	Generated      string            `json:"generated"`
	DurationMs     int64             `json:"duration_ms"`
	Status         string            `json:"status"`
	HasDifferences bool              `json:"has_differences"`
	Stats          models.Statistics `json:"stats"`
	Differences    []Line            `json:"differences,omitempty"`
	Root           *models.Result    `json:"root"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalPairs int) error {
	f.writer = writer
	return nil
}

// Progress is a no-op; JSON output is a single document
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete encodes the finished report
func (f *JSONFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonReport{
		RunID:          report.RunID,
		PathA:          report.PathA,
		PathB:          report.PathB,
		Algorithm:      report.Algorithm,
		Generated:      time.Now().Format(time.RFC3339),
		DurationMs:     report.Duration.Milliseconds(),
		Status:         string(report.Status),
		HasDifferences: report.HasDifferences(),
		Stats:          report.Stats,
		Differences:    Lines(report),
		Root:           report.Root,
	})
}

// Error reports a fatal error as a JSON object
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	return json.NewEncoder(f.writer).Encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
