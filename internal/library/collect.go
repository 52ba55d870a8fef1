package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/handiism/musicbase/internal/audio"
	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/progress"
	"github.com/handiism/musicbase/internal/sheet"
	"github.com/handiism/musicbase/internal/trackid"
	"golang.org/x/sync/errgroup"
)

// Store persists collected albums and songs.
type Store interface {
	AlbumPaths(ctx context.Context) (map[string]bool, error)
	UpsertAlbum(ctx context.Context, album model.Album) (model.Album, []model.AlbumField, error)
	UpsertSong(ctx context.Context, song model.Song) (model.Song, []model.SongField, error)
}

// Options control a collection run.
type Options struct {
	// Update re-reads albums that are already stored.
	Update bool
	// Limit stops the run after this many new or modified albums. Zero means
	// no limit.
	Limit int
	// Concurrency bounds the number of files read in parallel.
	Concurrency int
}

// Stats summarizes a collection run.
type Stats struct {
	Scanned       int
	Skipped       int
	NewOrModified int
	Songs         int
	Failed        int
}

// Collector walks a collection and stores what the tags and album sheets
// say about every album directory.
type Collector struct {
	store    Store
	reader   *audio.Reader
	baseDir  string
	opts     Options
	progress progress.Func
}

// NewCollector creates a collector for the collection under baseDir.
func NewCollector(store Store, baseDir string, opts Options, onProgress progress.Func) *Collector {
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	return &Collector{
		store:    store,
		reader:   audio.NewReader(),
		baseDir:  baseDir,
		opts:     opts,
		progress: onProgress,
	}
}

// errLimit ends the walk once enough albums were stored.
var errLimit = errors.New("limit reached")

// Collect walks the base directory and stores every directory holding audio
// files.
func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	known, err := c.store.AlbumPaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored albums: %w", err)
	}

	stats := &Stats{}
	err = filepath.WalkDir(c.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != c.baseDir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(c.baseDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = filepath.Base(c.baseDir)
		}

		if known[rel] && !c.opts.Update {
			stats.Skipped++
			return nil
		}

		changed, songs, err := c.collectAlbum(ctx, path, rel)
		switch {
		case errors.Is(err, errNoAudio):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			stats.Failed++
			c.progress.Emitf(progress.LevelError, "%s: %v", rel, err)
			return nil
		}

		stats.Scanned++
		stats.Songs += songs
		if changed {
			stats.NewOrModified++
			c.progress.Emitf(progress.LevelVerbose, "Stored %s", rel)
		}
		if c.opts.Limit > 0 && stats.NewOrModified >= c.opts.Limit {
			return errLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return stats, err
	}

	c.progress.Emitf(progress.LevelSuccess, "Collected %d albums (%d new or modified, %d skipped)",
		stats.Scanned, stats.NewOrModified, stats.Skipped)
	return stats, nil
}

var errNoAudio = errors.New("no audio files")

// collectAlbum stores one album directory and reports whether the album or
// any of its songs changed.
func (c *Collector) collectAlbum(ctx context.Context, dir, rel string) (bool, int, error) {
	tags, err := c.readTags(ctx, dir, rel)
	if err != nil {
		return false, 0, err
	}
	if len(tags) == 0 {
		return false, 0, errNoAudio
	}

	sh, err := sheet.Read(dir)
	switch {
	case errors.Is(err, sheet.ErrNoSheet):
		sh = nil
	case err != nil:
		c.progress.Emitf(progress.LevelWarning, "%s: %v", rel, err)
		sh = nil
	}

	album := BuildAlbum(rel, tags, sh)
	stored, fields, err := c.store.UpsertAlbum(ctx, album)
	if err != nil {
		return false, 0, err
	}
	changed := len(fields) > 0

	for _, s := range BuildSongs(stored, tags, sh) {
		_, fields, err := c.store.UpsertSong(ctx, s)
		if err != nil {
			return changed, 0, fmt.Errorf("%s: %w", s.File, err)
		}
		changed = changed || len(fields) > 0
	}
	return changed, len(tags), nil
}

// readTags reads the taggable files of dir in parallel, keeping file order.
func (c *Collector) readTags(ctx context.Context, dir, rel string) ([]model.FileTags, error) {
	names, err := audio.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, n := range names {
		if audio.IsTaggable(n) {
			files = append(files, n)
		}
	}

	tags := make([]model.FileTags, len(files))
	var mu sync.Mutex
	var unreadable []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := c.reader.Read(filepath.Join(dir, name))
			if err != nil {
				mu.Lock()
				unreadable = append(unreadable, name)
				mu.Unlock()
			}
			t.Directory = rel
			tags[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, name := range unreadable {
		c.progress.Emitf(progress.LevelWarning, "%s: unreadable tags in %s", rel, name)
	}
	return tags, nil
}

// BuildAlbum derives the album record of directory rel.
func BuildAlbum(rel string, tags []model.FileTags, sh *sheet.Sheet) model.Album {
	return model.Album{
		Title:   AlbumTitle(tags),
		Artist:  AlbumArtist(tags, sh),
		Date:    albumDate(AlbumYear(tags, sh), sh),
		Comment: AlbumComment(tags, sh),
		Label:   AlbumLabel(tags, sh),
		Path:    rel,
	}
}

// BuildSongs derives one song per file. Track ids rank the files' track
// numbers; the sheet track at that rank adds credits.
func BuildSongs(album model.Album, tags []model.FileTags, sh *sheet.Sheet) []model.Song {
	ids := make([]string, len(tags))
	for i, t := range tags {
		ids[i] = t.Track()
	}
	index := trackid.BuildIndex(ids)

	songs := make([]model.Song, 0, len(tags))
	for _, t := range tags {
		trackID := -1
		var track *sheet.Track
		if rank, ok := index.Rank(t.Track()); ok {
			trackID = rank + 1
			if sh != nil && rank < len(sh.Tracks) {
				track = &sh.Tracks[rank]
			}
		}

		date := model.YearDate(SongYear(t, sh))
		if date.Year() == album.Year() {
			date = album.Date
		}

		s := model.Song{
			AlbumID:   album.ID,
			Title:     firstOf(t.Title(), strings.TrimSuffix(t.File, filepath.Ext(t.File))),
			TrackID:   trackID,
			Genre:     t.Genre(),
			Artist:    t.Artist(),
			Composer:  t.Composer(),
			Performer: t.AlbumArtist(),
			File:      t.File,
			Comment:   SongComment(t, track),
			Date:      date,
		}
		if sh != nil {
			s.Genre = firstOf(s.Genre, sh.Genre)
			s.Artist = firstOf(s.Artist, sh.Artist)
			s.Composer = firstOf(s.Composer, sh.Composer)
		}
		songs = append(songs, s)
	}
	return songs
}

// albumDate uses the sheet's full release date when it falls in year.
func albumDate(year int, sh *sheet.Sheet) time.Time {
	if sh != nil {
		if d, err := time.Parse("2/1/2006", sh.Released); err == nil && d.Year() == year {
			return d
		}
	}
	return model.YearDate(year)
}
