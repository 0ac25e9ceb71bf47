package diff

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sdejongh/hashdiff/pkg/logging"
	"github.com/sdejongh/hashdiff/pkg/models"
	"github.com/sdejongh/hashdiff/pkg/storage"
)

// dirPair is one pending directory pairing on the traversal stack
type dirPair struct {
	pathA string
	pathB string
	rel   string
	out   *models.Result
}

// fileJob is one file pairing awaiting a verdict. Each job exclusively
// owns its result slot, so the worker pool shares no mutable state.
type fileJob struct {
	pathA string
	pathB string
	rel   string
	out   *models.Result
}

// walk traverses both trees with an explicit work stack, aligning the
// immediate children of each directory pairing by name. Subdirectory
// pairings are pushed back onto the stack; file pairings are collected
// as jobs for the worker pool. Stack depth is bounded by tree depth,
// not by the call stack.
func (c *Comparator) walk(ctx context.Context, rootA, rootB string, out *models.Result) []*fileJob {
	var jobs []*fileJob

	stack := []dirPair{{pathA: rootA, pathB: rootB, out: out}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entriesA, errA := c.backend.ReadDir(ctx, p.pathA)
		if errA != nil {
			c.markUnlistable(ctx, p, "A", errA)
			continue
		}
		entriesB, errB := c.backend.ReadDir(ctx, p.pathB)
		if errB != nil {
			c.markUnlistable(ctx, p, "B", errB)
			continue
		}

		byNameA := c.indexEntries(entriesA, p.rel)
		byNameB := c.indexEntries(entriesB, p.rel)

		dd := &models.DirDiff{Shared: make(map[string]*models.Result)}
		p.out.Kind = models.KindDir
		p.out.Dir = dd

		for name, a := range byNameA {
			b, shared := byNameB[name]
			if !shared {
				dd.OnlyInA = append(dd.OnlyInA, toPathEntry(a))
				continue
			}

			res := &models.Result{}
			dd.Shared[name] = res
			rel := childRel(p.rel, name)

			switch {
			case a.IsDir && b.IsDir:
				stack = append(stack, dirPair{pathA: a.Path, pathB: b.Path, rel: rel, out: res})
			case !a.IsDir && !b.IsDir:
				jobs = append(jobs, &fileJob{pathA: a.Path, pathB: b.Path, rel: rel, out: res})
			default:
				res.Kind = models.KindTypeMismatch
				res.Reason = describeTypeMismatch(a.IsDir, b.IsDir)
			}
		}

		for name, b := range byNameB {
			if _, shared := byNameA[name]; !shared {
				dd.OnlyInB = append(dd.OnlyInB, toPathEntry(b))
			}
		}

		sortEntries(dd.OnlyInA)
		sortEntries(dd.OnlyInB)
	}

	return jobs
}

// markUnlistable records a directory pairing that could not be listed.
// The failure is localized: traversal continues elsewhere in the tree.
func (c *Comparator) markUnlistable(ctx context.Context, p dirPair, side string, err error) {
	p.out.Kind = models.KindUnreadable
	p.out.Reason = "cannot list directory on side " + side + ": " + err.Error()

	c.opts.Logger.Warn(ctx, "directory not listable", logging.Fields{
		"path": p.rel,
		"side": side,
	})
}

// indexEntries maps entries by name, dropping excluded ones.
// Name matching is exact and case-sensitive; no normalization.
func (c *Comparator) indexEntries(entries []storage.FileInfo, rel string) map[string]storage.FileInfo {
	byName := make(map[string]storage.FileInfo, len(entries))
	for _, e := range entries {
		if shouldExclude(childRel(rel, e.Name), c.opts.ExcludePatterns) {
			continue
		}
		byName[e.Name] = e
	}
	return byName
}

// runJobs resolves file pairings on a semaphore-bounded worker pool.
// Each worker owns only its job's two file handles and result slot.
func (c *Comparator) runJobs(ctx context.Context, jobs []*fileJob) {
	if len(jobs) == 0 {
		return
	}

	total := len(jobs)
	var completed int64

	sem := make(chan struct{}, c.opts.MaxWorkers)
	var wg sync.WaitGroup

	for _, job := range jobs {
		sem <- struct{}{}
		wg.Add(1)

		go func(j *fileJob) {
			defer wg.Done()
			defer func() { <-sem }()

			c.compareFiles(ctx, j)

			if c.opts.Progress != nil {
				done := atomic.AddInt64(&completed, 1)
				c.opts.Progress(int(done), total)
			}
		}(job)
	}

	wg.Wait()
}

// compareFiles resolves one file pairing: sizes first, digests only when
// sizes match. Any I/O failure yields an unreadable verdict for this
// pairing alone.
func (c *Comparator) compareFiles(ctx context.Context, j *fileJob) {
	out := j.out

	infoA, err := c.backend.Stat(ctx, j.pathA)
	if err != nil {
		c.markUnreadable(ctx, j, "A", err)
		return
	}
	infoB, err := c.backend.Stat(ctx, j.pathB)
	if err != nil {
		c.markUnreadable(ctx, j, "B", err)
		return
	}

	out.SizeA = infoA.Size
	out.SizeB = infoB.Size

	// Size mismatch settles the verdict; the digest is never computed
	if infoA.Size != infoB.Size {
		out.Kind = models.KindSizeDiff
		return
	}

	var hashA, hashB string
	var errA, errB error
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, hashA, errA = c.digester.Sum(ctx, j.pathA)
	}()
	go func() {
		defer wg.Done()
		_, hashB, errB = c.digester.Sum(ctx, j.pathB)
	}()
	wg.Wait()

	if errA != nil {
		c.markUnreadable(ctx, j, "A", errA)
		return
	}
	if errB != nil {
		c.markUnreadable(ctx, j, "B", errB)
		return
	}

	out.HashA = hashA
	out.HashB = hashB

	if hashA == hashB {
		out.Kind = models.KindIdentical
	} else {
		out.Kind = models.KindHashDiff
	}
}

// markUnreadable records a file pairing that could not be resolved
func (c *Comparator) markUnreadable(ctx context.Context, j *fileJob, side string, err error) {
	j.out.Kind = models.KindUnreadable
	j.out.Reason = "cannot read file on side " + side + ": " + err.Error()

	c.opts.Logger.Warn(ctx, "file not readable", logging.Fields{
		"path": j.rel,
		"side": side,
	})
}

func toPathEntry(info storage.FileInfo) models.PathEntry {
	entry := models.PathEntry{Name: info.Name, Type: models.EntryFile}
	if info.IsDir {
		entry.Type = models.EntryDir
	}
	return entry
}

func childRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

func sortEntries(entries []models.PathEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
