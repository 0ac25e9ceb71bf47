package diff

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/hashdiff/pkg/digest"
	"github.com/sdejongh/hashdiff/pkg/logging"
	"github.com/sdejongh/hashdiff/pkg/models"
	"github.com/sdejongh/hashdiff/pkg/storage"
)

// PathNotFoundError indicates a comparison root does not exist.
// Root-level absence is fatal: there is nothing to compare.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return "path not found: " + e.Path
}

// ProgressFunc is called after each file pairing completes
type ProgressFunc func(completed, total int)

// Options configures a Comparator
type Options struct {
	// MaxWorkers bounds the number of file pairings hashed in parallel
	MaxWorkers int

	// ExcludePatterns are glob patterns; matching names are dropped from
	// directory listings on both sides before alignment
	ExcludePatterns []string

	// Logger receives traversal diagnostics; nil disables logging
	Logger logging.Logger

	// OnStart is invoked once the number of file pairings is known,
	// before any of them resolve; may be nil
	OnStart func(totalPairs int)

	// Progress is invoked as file pairings complete; may be nil
	Progress ProgressFunc
}

// Comparator compares two filesystem roots and produces a structured
// diff report. All settings are explicit values on the comparator, so
// independent comparisons can run concurrently with different settings.
type Comparator struct {
	backend  storage.Backend
	digester digest.Digester
	opts     Options
}

// NewComparator creates a comparator over the given backend and digester
func NewComparator(backend storage.Backend, digester digest.Digester, opts Options) *Comparator {
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}
	return &Comparator{
		backend:  backend,
		digester: digester,
		opts:     opts,
	}
}

// Compare compares the two roots and returns the finished report.
// Either root missing is fatal; a root-level file/directory type
// mismatch is reported as a distinguishable result, not an error.
// All other failures are localized to a single pairing.
func (c *Comparator) Compare(ctx context.Context, pathA, pathB string) (*models.Report, error) {
	report := &models.Report{
		RunID:     uuid.New().String(),
		PathA:     pathA,
		PathB:     pathB,
		Algorithm: c.digester.Algorithm(),
		StartTime: time.Now(),
	}

	infoA, err := c.statRoot(ctx, pathA)
	if err != nil {
		return nil, err
	}
	infoB, err := c.statRoot(ctx, pathB)
	if err != nil {
		return nil, err
	}

	root := &models.Result{}
	var jobs []*fileJob

	switch {
	case infoA.IsDir && infoB.IsDir:
		jobs = c.walk(ctx, pathA, pathB, root)

	case !infoA.IsDir && !infoB.IsDir:
		jobs = []*fileJob{{pathA: pathA, pathB: pathB, rel: infoA.Name, out: root}}

	default:
		root.Kind = models.KindTypeMismatch
		root.Reason = describeTypeMismatch(infoA.IsDir, infoB.IsDir)
	}

	if c.opts.OnStart != nil {
		c.opts.OnStart(len(jobs))
	}
	c.runJobs(ctx, jobs)

	report.Root = root
	report.Finalize(time.Now())

	c.opts.Logger.Info(ctx, "comparison finished", logging.Fields{
		"run_id":   report.RunID,
		"status":   string(report.Status),
		"files":    report.Stats.FilesCompared,
		"dirs":     report.Stats.DirsCompared,
		"duration": report.Duration.String(),
	})

	return report, nil
}

// statRoot resolves a root's type tag, mapping absence to PathNotFoundError
func (c *Comparator) statRoot(ctx context.Context, path string) (*storage.FileInfo, error) {
	info, err := c.backend.Stat(ctx, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &PathNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to stat root %s: %w", path, err)
	}
	return info, nil
}

func describeTypeMismatch(aIsDir, bIsDir bool) string {
	if aIsDir && !bIsDir {
		return "directory in A, file in B"
	}
	return "file in A, directory in B"
}
