package tagging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/handiism/musicbase/internal/audio"
	ioutils "github.com/handiism/musicbase/internal/io"
	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/progress"
	"github.com/handiism/musicbase/internal/sheet"
)

// ErrNoAudioFiles is returned when a directory has no taggable files.
var ErrNoAudioFiles = errors.New("no taggable audio files")

// Options selects the optional steps of the tag setter.
type Options struct {
	// RenameTracks prefixes files with their track number when the
	// directory was not numbered yet.
	RenameTracks bool

	// EmbedCover stores the folder image in every file.
	EmbedCover bool
	Cover      ioutils.CoverOptions

	// Playlist writes a playlist for the album.
	Playlist       bool
	PlaylistFormat model.PlaylistFormat
	M3UExtended    bool
}

// Result reports what Apply did.
type Result struct {
	Tagged    []string
	Renamed   map[string]string
	Unmatched []string
	Playlist  string
}

// Setter writes tags from an album sheet into the audio files of its
// directory.
type Setter struct {
	tagger   *audio.Tagger
	reader   *audio.Reader
	images   *ioutils.ImageService
	opts     Options
	progress progress.Func
}

// NewSetter creates a tag setter. A nil config selects audio.DefaultTagConfig.
func NewSetter(config *audio.TagConfig, opts Options, onProgress progress.Func) *Setter {
	return &Setter{
		tagger:   audio.NewTagger(config),
		reader:   audio.NewReader(),
		images:   ioutils.NewImageService(),
		opts:     opts,
		progress: onProgress,
	}
}

// taggableFiles lists the file names in dir the tagger can write.
func taggableFiles(dir string) ([]string, error) {
	files, err := audio.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range files {
		if audio.IsTaggable(f) {
			names = append(names, filepath.Base(f))
		}
	}
	return names, nil
}

// Apply tags every file of dir from sh. Files whose track cannot be found
// in the sheet are reported and left alone.
func (s *Setter) Apply(ctx context.Context, dir string, sh *sheet.Sheet) (*Result, error) {
	names, err := taggableFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoAudioFiles)
	}

	numbered := StartWithTrackNumbers(names)
	tracks := numberTracks(sh.Tracks)
	people := creditsFor(sh)
	if sh.Artist == "" {
		s.progress.Emitf(progress.LevelWarning, "No artist in the album sheet of %s", filepath.Base(dir))
	}

	artwork := s.artwork(ctx, dir)

	res := &Result{Renamed: make(map[string]string)}
	var entries []playlistItem
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		stem, number := splitFileName(name, numbered)
		track, ok := findTrack(tracks, stem, number)
		if !ok {
			s.progress.Emitf(progress.LevelError, "%s: no track in the album sheet", name)
			res.Unmatched = append(res.Unmatched, name)
			continue
		}

		tags := audio.TrackTags{
			Title:       track.Title,
			Artist:      people.artist,
			AlbumArtist: people.albumArtist,
			Album:       sh.Title,
			Composer:    people.composer,
			Genre:       sh.Genre,
			TrackNumber: track.Number,
			TotalTracks: len(names),
		}
		if sh.Year > 0 {
			tags.Year = strconv.Itoa(sh.Year)
		}

		path := filepath.Join(dir, name)
		if err := s.tagger.Write(path, tags, artwork); err != nil {
			s.progress.Emitf(progress.LevelError, "%v", err)
			res.Unmatched = append(res.Unmatched, name)
			continue
		}
		res.Tagged = append(res.Tagged, name)
		s.progress.Emitf(progress.LevelVerbose, "Tagged %s as %d. %s", name, track.Number, track.Title)

		if !numbered && s.opts.RenameTracks {
			renamed := fmt.Sprintf("%02d_%s", track.Number, name)
			if err := renameFile(dir, name, renamed); err != nil {
				s.progress.Emitf(progress.LevelWarning, "Not renaming %s: %v", name, err)
			} else {
				res.Renamed[name] = renamed
				name = renamed
			}
		}
		entries = append(entries, playlistItem{file: name, track: track})
	}

	if s.opts.Playlist && len(entries) > 0 {
		path, err := s.writePlaylist(ctx, dir, sh, people.artist, entries)
		if err != nil {
			s.progress.Emitf(progress.LevelWarning, "Playlist: %v", err)
		} else {
			res.Playlist = path
		}
	}

	level := progress.LevelSuccess
	if len(res.Unmatched) > 0 {
		level = progress.LevelWarning
	}
	s.progress.Emitf(level, "Tagged %d of %d files in %s", len(res.Tagged), len(names), filepath.Base(dir))
	return res, nil
}

// artwork loads the folder image when embedding is enabled.
func (s *Setter) artwork(ctx context.Context, dir string) []byte {
	if !s.opts.EmbedCover {
		return nil
	}
	path, ok := ioutils.FindCover(dir)
	if !ok {
		s.progress.Emitf(progress.LevelVerbose, "No cover image in %s", filepath.Base(dir))
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.progress.Emitf(progress.LevelWarning, "Read cover: %v", err)
		return nil
	}
	opts := s.opts.Cover
	opts.JPEG = true
	data, err = s.images.PrepareCover(ctx, data, opts)
	if err != nil {
		s.progress.Emitf(progress.LevelWarning, "Prepare cover: %v", err)
		return nil
	}
	return data
}

func renameFile(dir, from, to string) error {
	dst := filepath.Join(dir, to)
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s: %w", to, ioutils.ErrExists)
	}
	return os.Rename(filepath.Join(dir, from), dst)
}

type playlistItem struct {
	file  string
	track sheetTrack
}

func (s *Setter) writePlaylist(ctx context.Context, dir string, sh *sheet.Sheet, artist string, items []playlistItem) (string, error) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].track.Number < items[j].track.Number })

	pl := &audio.Playlist{Title: sh.Title, Artist: artist}
	for _, it := range items {
		pl.Entries = append(pl.Entries, audio.PlaylistEntry{
			File:     it.file,
			Title:    it.track.Title,
			Duration: it.track.Length(),
		})
	}
	content := audio.NewPlaylistCreator(s.opts.PlaylistFormat, s.opts.M3UExtended).CreatePlaylist(pl)

	album := model.Album{Title: sh.Title, Path: dir}
	path := album.PlaylistPath(dir, s.opts.PlaylistFormat)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// people holds the artist related tags of an album.
type people struct {
	artist      string
	albumArtist string
	composer    string
}

// creditsFor derives artist, album artist and composer from a sheet. For
// classical music and opera the first artist is the composer, written
// "Surname, Given names", and the remaining artists are the performers.
func creditsFor(sh *sheet.Sheet) people {
	p := people{artist: sh.Artist, composer: sh.Composer}
	if sh.Artist == "" || !sh.IsClassical() {
		return p
	}

	seq := strings.Split(sh.Artist, ", ")
	performer := sh.Performer
	if performer == "" && len(seq) > 1 {
		performer = strings.Join(seq[1:], ", ")
	}
	if p.composer == "" {
		p.composer = invertName(seq[0])
	}
	p.albumArtist = performer
	if performer != "" && !strings.Contains(p.artist, performer) {
		p.artist += ", " + performer
	}
	return p
}

// invertName turns "Ludwig van Beethoven" into "Beethoven, Ludwig van".
func invertName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	last := parts[len(parts)-1]
	return last + ", " + strings.Join(parts[:len(parts)-1], " ")
}
