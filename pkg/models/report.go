package models

import (
	"time"
)

// Report represents the results of one comparison run
type Report struct {
	// Run details
	RunID     string `json:"run_id"`
	PathA     string `json:"path_a"`
	PathB     string `json:"path_b"`
	Algorithm string `json:"algorithm"`

	// Timing
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// Root is the top-level comparison result
	Root *Result `json:"root"`

	// Stats are derived from the finished result tree
	Stats Statistics `json:"stats"`

	// Status is the overall outcome
	Status RunStatus `json:"status"`
}

// Statistics holds comparison run metrics
type Statistics struct {
	// Pairings by verdict
	FilesCompared  int `json:"files_compared"`
	DirsCompared   int `json:"dirs_compared"`
	Identical      int `json:"identical"`
	SizeDiffs      int `json:"size_diffs"`
	HashDiffs      int `json:"hash_diffs"`
	TypeMismatches int `json:"type_mismatches"`
	Unreadable     int `json:"unreadable"`

	// Unmatched entries
	OnlyInA int `json:"only_in_a"`
	OnlyInB int `json:"only_in_b"`

	// BytesHashed is the total number of bytes streamed through the
	// digest engine, both sides counted
	BytesHashed int64 `json:"bytes_hashed"`
}

// RunStatus represents the overall result of a comparison run
type RunStatus string

const (
	// StatusClean indicates no differences and no errors
	StatusClean RunStatus = "clean"
	// StatusDifferences indicates at least one difference was found
	StatusDifferences RunStatus = "differences"
	// StatusErrors indicates at least one pairing could not be resolved
	StatusErrors RunStatus = "errors"
)

// ExitCode returns the process exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusClean:
		return 0
	case StatusDifferences:
		return 1
	case StatusErrors:
		return 2
	default:
		return 2
	}
}

// HasDifferences reports whether the run found any difference
func (r *Report) HasDifferences() bool {
	return r.Root.HasDifferences()
}

// Finalize derives statistics, status, and timing from the result tree.
// It must be called exactly once, after the tree is fully assembled.
func (r *Report) Finalize(end time.Time) {
	r.EndTime = end
	r.Duration = end.Sub(r.StartTime)
	r.Stats = Statistics{}

	r.Root.Walk(func(path string, res *Result) {
		switch res.Kind {
		case KindIdentical:
			r.Stats.FilesCompared++
			r.Stats.Identical++
			r.Stats.BytesHashed += res.SizeA + res.SizeB
		case KindSizeDiff:
			r.Stats.FilesCompared++
			r.Stats.SizeDiffs++
		case KindHashDiff:
			r.Stats.FilesCompared++
			r.Stats.HashDiffs++
			r.Stats.BytesHashed += res.SizeA + res.SizeB
		case KindTypeMismatch:
			r.Stats.TypeMismatches++
		case KindUnreadable:
			r.Stats.Unreadable++
		case KindDir:
			r.Stats.DirsCompared++
			if res.Dir != nil {
				r.Stats.OnlyInA += len(res.Dir.OnlyInA)
				r.Stats.OnlyInB += len(res.Dir.OnlyInB)
			}
		}
	})

	switch {
	case r.Stats.Unreadable > 0:
		r.Status = StatusErrors
	case r.HasDifferences():
		r.Status = StatusDifferences
	default:
		r.Status = StatusClean
	}
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
