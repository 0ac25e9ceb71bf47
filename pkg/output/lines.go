package output

import (
	"fmt"
	"sort"

	"github.com/sdejongh/hashdiff/pkg/models"
)

// LineCategory labels one rendered difference line
type LineCategory string

const (
	CategoryOnlyInA      LineCategory = "only in A"
	CategoryOnlyInB      LineCategory = "only in B"
	CategorySizeDiff     LineCategory = "differ (size)"
	CategoryHashDiff     LineCategory = "differ (hash)"
	CategoryTypeMismatch LineCategory = "type mismatch"
	CategoryUnreadable   LineCategory = "unreadable"
)

// Line is one difference in presentation order
type Line struct {
	Category LineCategory `json:"category"`
	Path     string       `json:"path"`
	Detail   string       `json:"detail,omitempty"`
}

// Lines flattens a report's result tree into difference lines, sorted by
// name at each level. The comparison itself guarantees no ordering; the
// sort here is purely presentational.
func Lines(report *models.Report) []Line {
	var lines []Line
	collectLines(report.Root, "", &lines)
	return lines
}

func collectLines(res *models.Result, path string, lines *[]Line) {
	if res == nil {
		return
	}

	switch res.Kind {
	case models.KindIdentical:
		// identical pairings produce no output

	case models.KindSizeDiff:
		*lines = append(*lines, Line{
			Category: CategorySizeDiff,
			Path:     path,
			Detail:   fmt.Sprintf("%d != %d bytes", res.SizeA, res.SizeB),
		})

	case models.KindHashDiff:
		*lines = append(*lines, Line{
			Category: CategoryHashDiff,
			Path:     path,
			Detail:   shortHash(res.HashA) + " != " + shortHash(res.HashB),
		})

	case models.KindTypeMismatch:
		*lines = append(*lines, Line{Category: CategoryTypeMismatch, Path: path, Detail: res.Reason})

	case models.KindUnreadable:
		*lines = append(*lines, Line{Category: CategoryUnreadable, Path: path, Detail: res.Reason})

	case models.KindDir:
		if res.Dir == nil {
			return
		}
		for _, entry := range res.Dir.OnlyInA {
			*lines = append(*lines, Line{
				Category: CategoryOnlyInA,
				Path:     joinRel(path, entry.Name),
				Detail:   string(entry.Type),
			})
		}
		for _, entry := range res.Dir.OnlyInB {
			*lines = append(*lines, Line{
				Category: CategoryOnlyInB,
				Path:     joinRel(path, entry.Name),
				Detail:   string(entry.Type),
			})
		}

		names := make([]string, 0, len(res.Dir.Shared))
		for name := range res.Dir.Shared {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			collectLines(res.Dir.Shared[name], joinRel(path, name), lines)
		}
	}
}

func joinRel(path, name string) string {
	if path == "" {
		return name
	}
	return path + "/" + name
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
