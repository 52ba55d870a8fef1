package tagging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/handiism/musicbase/internal/audio"
	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/progress"
	"gopkg.in/yaml.v3"
)

// Corrections maps album directories, relative to a base directory, to the
// tag values every file in them should get:
//
//	Yes_-_[1972]_Close_to_the_Edge:
//	- genre: Progressive Rock
//	- year: 1972
type Corrections map[string][]map[string]string

// correctable lists the tags Correct can set, by canonical name.
var correctable = map[string]bool{
	"title":       true,
	"artist":      true,
	"albumartist": true,
	"album":       true,
	"composer":    true,
	"genre":       true,
	"year":        true,
	"track":       true,
	"comment":     true,
}

// ParseCorrections decodes a corrections document and checks its tag names
// and numeric values.
func ParseCorrections(data []byte) (Corrections, error) {
	var raw map[string][]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse corrections: %w", err)
	}

	c := make(Corrections, len(raw))
	for dir, edits := range raw {
		for _, edit := range edits {
			m := make(map[string]string, len(edit))
			for name, value := range edit {
				tag := model.TagName(strings.ToLower(name))
				if !correctable[tag] {
					return nil, fmt.Errorf("%s: unknown tag %q", dir, name)
				}
				v := strings.TrimSpace(fmt.Sprint(value))
				if tag == "year" || tag == "track" {
					if _, err := strconv.Atoi(v); err != nil {
						return nil, fmt.Errorf("%s: %s must be a number, got %q", dir, name, v)
					}
				}
				m[tag] = v
			}
			c[dir] = append(c[dir], m)
		}
	}
	return c, nil
}

// LoadCorrections reads a corrections file.
func LoadCorrections(path string) (Corrections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCorrections(data)
}

// Correct applies corrections under baseDir. Only files whose tags actually
// change are written. It returns the number of changed files per directory.
func (s *Setter) Correct(ctx context.Context, baseDir string, corrections Corrections) (map[string]int, error) {
	dirs := make([]string, 0, len(corrections))
	for dir := range corrections {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	changed := make(map[string]int, len(dirs))
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		values := make(map[string]string)
		for _, edit := range corrections[dir] {
			for tag, v := range edit {
				values[tag] = v
			}
		}

		path := filepath.Join(baseDir, dir)
		names, err := taggableFiles(path)
		if err != nil {
			s.progress.Emitf(progress.LevelError, "%s: %v", dir, err)
			continue
		}
		for _, name := range names {
			ok, err := s.correctFile(filepath.Join(path, name), values)
			if err != nil {
				s.progress.Emitf(progress.LevelError, "%v", err)
				continue
			}
			if ok {
				changed[dir]++
			}
		}
		s.progress.Emitf(progress.LevelInfo, "%s, %d files changed", dir, changed[dir])
	}
	return changed, nil
}

// correctFile writes the values that differ from the file's tags.
func (s *Setter) correctFile(path string, values map[string]string) (bool, error) {
	current, err := s.reader.Read(path)
	if err != nil {
		return false, err
	}

	cfg := &audio.TagConfig{
		ModifyTags:  true,
		Artist:      audio.TagDoNotModify,
		AlbumArtist: audio.TagDoNotModify,
		Album:       audio.TagDoNotModify,
		Composer:    audio.TagDoNotModify,
		Genre:       audio.TagDoNotModify,
		Year:        audio.TagDoNotModify,
		TrackNumber: audio.TagDoNotModify,
		TrackTitle:  audio.TagDoNotModify,
		Comments:    audio.TagDoNotModify,
	}
	var tags audio.TrackTags
	changes := 0
	for tag, v := range values {
		if sameValue(tag, current.Get(tag), v) {
			continue
		}
		changes++
		switch tag {
		case "title":
			tags.Title, cfg.TrackTitle = v, audio.TagModify
		case "artist":
			tags.Artist, cfg.Artist = v, audio.TagModify
		case "albumartist":
			tags.AlbumArtist, cfg.AlbumArtist = v, audio.TagModify
		case "album":
			tags.Album, cfg.Album = v, audio.TagModify
		case "composer":
			tags.Composer, cfg.Composer = v, audio.TagModify
		case "genre":
			tags.Genre, cfg.Genre = v, audio.TagModify
		case "comment":
			tags.Comment, cfg.Comments = v, audio.TagModify
		case "year":
			tags.Year, cfg.Year = v, audio.TagModify
		case "track":
			tags.TrackNumber, _ = strconv.Atoi(v)
			tags.TotalTracks = totalOf(current.Track())
			cfg.TrackNumber = audio.TagModify
		}
	}
	if changes == 0 {
		return false, nil
	}
	if err := audio.NewTagger(cfg).Write(path, tags, nil); err != nil {
		return false, err
	}
	return true, nil
}

// sameValue compares a tag value with a correction. Track numbers compare
// without their total.
func sameValue(tag, current, want string) bool {
	if tag == "track" {
		current, _, _ = strings.Cut(current, "/")
		a, errA := strconv.Atoi(strings.TrimSpace(current))
		b, errB := strconv.Atoi(want)
		return errA == nil && errB == nil && a == b
	}
	return current == want
}

// totalOf returns the total of a "n/total" track value, or 0.
func totalOf(track string) int {
	_, total, ok := strings.Cut(track, "/")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(total))
	if err != nil {
		return 0
	}
	return n
}
