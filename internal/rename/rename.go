package rename

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/handiism/musicbase/internal/audio"
	ioutils "github.com/handiism/musicbase/internal/io"
	"github.com/handiism/musicbase/internal/naming"
	"github.com/handiism/musicbase/internal/progress"
	"golang.org/x/sync/errgroup"
)

// Entry is a proposed rename of one album directory.
type Entry struct {
	Old string
	New string
}

// Plan holds the proposed renames of a base directory, sorted by old name.
type Plan struct {
	BaseDir string
	// Candidates are all directories whose canonical name differs.
	Candidates []Entry
	// Consider is the subset where either name lacks the artist separator,
	// which usually means the artist could not be told apart from the title.
	Consider []Entry
}

// IsConsider reports whether the entry for old needs a closer look.
func (p *Plan) IsConsider(old string) bool {
	for _, e := range p.Consider {
		if e.Old == old {
			return true
		}
	}
	return false
}

// Result reports the outcome of Apply.
type Result struct {
	Renamed []Entry
	Failed  map[string]error
}

// YearReader finds the release year recorded in the tags of an album
// directory.
type YearReader interface {
	Year(dir string) (string, bool)
}

// Renamer proposes and applies canonical directory names.
type Renamer struct {
	corrections naming.Corrections
	years       YearReader
	concurrency int
	progress    progress.Func
}

// NewRenamer creates a renamer. years may be nil, in which case names
// without a usable year stay undated.
func NewRenamer(corrections naming.Corrections, years YearReader, concurrency int, onProgress progress.Func) *Renamer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Renamer{corrections: corrections, years: years, concurrency: concurrency, progress: onProgress}
}

// NewDefaultRenamer uses the default corrections and reads years from audio
// tags.
func NewDefaultRenamer(concurrency int, onProgress progress.Func) *Renamer {
	return NewRenamer(naming.DefaultCorrections(), audio.NewReader(), concurrency, onProgress)
}

// Plan canonicalizes every subdirectory of baseDir. Directories are
// processed in parallel; the plan lists them in name order.
func (r *Renamer) Plan(ctx context.Context, baseDir string) (*Plan, error) {
	dirs, err := ioutils.ListDirs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", baseDir, err)
	}
	r.progress.Emitf(progress.LevelVerbose, "Scanning %d directories in %s", len(dirs), baseDir)

	var (
		mu      sync.Mutex
		renamed = make(map[string]string, len(dirs))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := r.canonicalizer(filepath.Join(baseDir, dir)).Canonicalize(dir)
			mu.Lock()
			renamed[dir] = name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := &Plan{BaseDir: baseDir}
	for _, dir := range dirs {
		name := renamed[dir]
		if name == dir {
			continue
		}
		e := Entry{Old: dir, New: name}
		plan.Candidates = append(plan.Candidates, e)
		if !strings.Contains(name, naming.Separator) || !strings.Contains(dir, naming.Separator) {
			plan.Consider = append(plan.Consider, e)
		}
	}
	r.progress.Emitf(progress.LevelInfo, "%d of %d directories would be renamed, %d need a closer look",
		len(plan.Candidates), len(dirs), len(plan.Consider))
	return plan, nil
}

func (r *Renamer) canonicalizer(path string) *naming.Canonicalizer {
	c := &naming.Canonicalizer{Corrections: &r.corrections}
	if r.years != nil {
		c.Lookup = func(string) (string, bool) {
			year, ok := r.years.Year(path)
			if ok {
				r.progress.Emitf(progress.LevelVerbose, "Year %s from tags of %s", year, filepath.Base(path))
			}
			return year, ok
		}
	}
	return c
}

// Apply renames the plan's candidates. When only is non-empty, just the
// entries whose old names it lists are renamed. Existing targets are never
// replaced. The base directory is locked for the duration.
func (r *Renamer) Apply(ctx context.Context, plan *Plan, only []string) (*Result, error) {
	lock, err := ioutils.Lock(plan.BaseDir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	selected := make(map[string]bool, len(only))
	for _, name := range only {
		selected[name] = true
	}

	res := &Result{Failed: make(map[string]error)}
	for _, e := range plan.Candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if len(selected) > 0 && !selected[e.Old] {
			continue
		}
		err := ioutils.MoveDir(filepath.Join(plan.BaseDir, e.Old), filepath.Join(plan.BaseDir, e.New))
		if err != nil {
			res.Failed[e.Old] = err
			level := progress.LevelError
			if errors.Is(err, ioutils.ErrExists) {
				level = progress.LevelWarning
			}
			r.progress.Emitf(level, "Not renaming %s: %v", e.Old, err)
			continue
		}
		res.Renamed = append(res.Renamed, e)
		r.progress.Emitf(progress.LevelVerbose, "%s -> %s", e.Old, e.New)
	}
	r.progress.Emitf(progress.LevelSuccess, "Renamed %d directories", len(res.Renamed))
	return res, nil
}

// Names returns the old names of entries, sorted.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Old
	}
	sort.Strings(names)
	return names
}
