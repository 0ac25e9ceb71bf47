package output

import (
	"fmt"
	"os"

	"github.com/sdejongh/hashdiff/pkg/models"
)

// WriteReportFile writes the comparison report to a file.
// Format can be "human" or "json".
func WriteReportFile(report *models.Report, path string, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	var formatter Formatter
	switch format {
	case "json":
		formatter = NewJSONFormatter()
	default: // "human"
		formatter = NewHumanFormatter(false)
	}

	if err := formatter.Start(file, 0); err != nil {
		return err
	}
	if err := formatter.Complete(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
