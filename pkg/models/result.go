package models

// ResultKind categorizes the outcome of comparing one pair of paths
type ResultKind string

const (
	// KindIdentical indicates sizes and digests both match
	KindIdentical ResultKind = "identical"
	// KindSizeDiff indicates sizes differ (digest never computed)
	KindSizeDiff ResultKind = "size_diff"
	// KindHashDiff indicates sizes match but digests differ
	KindHashDiff ResultKind = "hash_diff"
	// KindTypeMismatch indicates one side is a file and the other a directory
	KindTypeMismatch ResultKind = "type_mismatch"
	// KindUnreadable indicates the pairing could not be resolved due to an I/O error
	KindUnreadable ResultKind = "unreadable"
	// KindDir indicates a directory pairing; Dir holds the nested diff
	KindDir ResultKind = "dir"
)

// Result is the comparison outcome for one pairing of paths.
// For file pairings the size/digest fields describe the verdict;
// for directory pairings Dir holds the nested DirDiff.
type Result struct {
	Kind ResultKind `json:"kind"`

	// SizeA and SizeB are the byte sizes of each side (file pairings)
	SizeA int64 `json:"size_a,omitempty"`
	SizeB int64 `json:"size_b,omitempty"`

	// HashA and HashB are the hex digests of each side, set only
	// when digests were actually computed
	HashA string `json:"hash_a,omitempty"`
	HashB string `json:"hash_b,omitempty"`

	// Reason explains unreadable and type_mismatch results
	Reason string `json:"reason,omitempty"`

	// Dir is the nested diff for directory pairings
	Dir *DirDiff `json:"dir,omitempty"`
}

// DirDiff is the structured result of comparing two directories.
// Every name appearing under the pairing falls into exactly one of
// OnlyInA, OnlyInB, or Shared, and every shared name is resolved to
// a concrete sub-result.
type DirDiff struct {
	// OnlyInA lists entries present only under the first root,
	// sorted by name. Their contents are never inspected.
	OnlyInA []PathEntry `json:"only_in_a,omitempty"`

	// OnlyInB lists entries present only under the second root, sorted by name
	OnlyInB []PathEntry `json:"only_in_b,omitempty"`

	// Shared maps each name present on both sides to its sub-result
	Shared map[string]*Result `json:"shared,omitempty"`
}

// HasDifferences reports whether the subtree rooted at r contains any
// difference. Unreadable pairings count: equality was not established.
func (r *Result) HasDifferences() bool {
	if r == nil {
		return false
	}
	switch r.Kind {
	case KindIdentical:
		return false
	case KindDir:
		if r.Dir == nil {
			return false
		}
		if len(r.Dir.OnlyInA) > 0 || len(r.Dir.OnlyInB) > 0 {
			return true
		}
		for _, sub := range r.Dir.Shared {
			if sub.HasDifferences() {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Walk visits every result in the subtree rooted at r, including r itself.
// Directory results are visited before their children. The relative path of
// each result is passed to fn; the root is visited with an empty path.
func (r *Result) Walk(fn func(path string, res *Result)) {
	r.walk("", fn)
}

func (r *Result) walk(path string, fn func(path string, res *Result)) {
	if r == nil {
		return
	}
	fn(path, r)
	if r.Kind != KindDir || r.Dir == nil {
		return
	}
	for name, sub := range r.Dir.Shared {
		child := name
		if path != "" {
			child = path + "/" + name
		}
		sub.walk(child, fn)
	}
}
