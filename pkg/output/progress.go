package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/hashdiff/pkg/models"
)

// ProgressFormatter draws a progress bar over file pairings while they
// resolve, then renders the final report through the human formatter
type ProgressFormatter struct {
	writer io.Writer
	bar    *pb.ProgressBar
	human  *HumanFormatter
}

// NewProgressFormatter creates a progress bar formatter
func NewProgressFormatter(colorize bool) *ProgressFormatter {
	return &ProgressFormatter{
		human: NewHumanFormatter(colorize),
	}
}

// Start initializes the bar for totalPairs file pairings
func (f *ProgressFormatter) Start(writer io.Writer, totalPairs int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	if totalPairs > 0 {
		f.bar = pb.New(totalPairs)
		f.bar.SetWriter(writer)

		// Cap the bar width so lines never wrap on narrow terminals
		if file, ok := writer.(*os.File); ok {
			if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 && width < 120 {
				f.bar.SetWidth(width)
			}
		}

		f.bar.Start()
	}

	return f.human.Start(writer, totalPairs)
}

// Progress advances the bar
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	if f.bar != nil {
		f.bar.SetCurrent(int64(update.Completed))
	}
	return nil
}

// Complete finishes the bar and renders the report
func (f *ProgressFormatter) Complete(report *models.Report) error {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	return f.human.Complete(report)
}

// Error finishes the bar and reports the error
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
