package library

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/handiism/musicbase/internal/audio"
	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/progress"
	"golang.org/x/sync/errgroup"
)

// Query describes a tag search.
type Query struct {
	// Text is a substring, or a regular expression when Regex is set.
	Text string
	// Tag restricts the search to one tag. Empty searches every tag.
	Tag   string
	Regex bool
	// Limit stops after this many hits. Zero means no limit.
	Limit int
}

// Hit is one tag value that matched a query.
type Hit struct {
	Directory string `json:"directory"`
	File      string `json:"file"`
	Tag       string `json:"tag"`
	Value     string `json:"value"`
}

// Searcher finds tag values in the audio files of a collection.
type Searcher struct {
	reader      *audio.Reader
	baseDir     string
	concurrency int
	progress    progress.Func
}

// NewSearcher creates a searcher over the collection under baseDir.
func NewSearcher(baseDir string, concurrency int, onProgress progress.Func) *Searcher {
	if concurrency < 1 {
		concurrency = 4
	}
	return &Searcher{reader: audio.NewReader(), baseDir: baseDir, concurrency: concurrency, progress: onProgress}
}

type matcher func(string) bool

func (q Query) matcher() (matcher, error) {
	if q.Text == "" {
		return nil, fmt.Errorf("empty search text")
	}
	if !q.Regex {
		return func(v string) bool { return strings.Contains(v, q.Text) }, nil
	}
	re, err := regexp.Compile(q.Text)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", q.Text, err)
	}
	return re.MatchString, nil
}

// Match returns the hits of q within one file's tags.
func (q Query) Match(tags model.FileTags) ([]Hit, error) {
	m, err := q.matcher()
	if err != nil {
		return nil, err
	}
	return matchTags(q, m, tags), nil
}

func matchTags(q Query, m matcher, tags model.FileTags) []Hit {
	names := tags.Names()
	if q.Tag != "" {
		names = []string{model.TagName(q.Tag)}
	}
	var hits []Hit
	for _, name := range names {
		for _, v := range tags.Values(name) {
			if m(v) {
				hits = append(hits, Hit{Directory: tags.Directory, File: tags.File, Tag: name, Value: v})
			}
		}
	}
	return hits
}

// Search reads every taggable file under the base directory and returns the
// hits in path order.
func (s *Searcher) Search(ctx context.Context, q Query) ([]Hit, error) {
	m, err := q.matcher()
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.baseDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if audio.IsTaggable(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	found := make([][]Hit, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tags, err := s.reader.Read(path)
			if err != nil {
				s.progress.Emitf(progress.LevelWarning, "%v", err)
				return nil
			}
			if rel, err := filepath.Rel(s.baseDir, filepath.Dir(path)); err == nil {
				tags.Directory = filepath.ToSlash(rel)
			}
			found[i] = matchTags(q, m, tags)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var hits []Hit
	for _, h := range found {
		hits = append(hits, h...)
		if q.Limit > 0 && len(hits) >= q.Limit {
			return hits[:q.Limit], nil
		}
	}
	return hits, nil
}
