package reconcile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/handiism/musicbase/internal/audio"
	"github.com/handiism/musicbase/internal/discogs"
	"github.com/handiism/musicbase/internal/liner"
	"github.com/handiism/musicbase/internal/match"
	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/progress"
	"github.com/handiism/musicbase/internal/sheet"
)

// ErrNoMatch is returned when no catalog record fits the album directory.
var ErrNoMatch = errors.New("no matching release")

// Catalog is the part of the catalog client the reconciler uses.
type Catalog interface {
	Search(ctx context.Context, params discogs.SearchParams) ([]discogs.Result, error)
	Release(ctx context.Context, id int) (*model.Release, error)
	Master(ctx context.Context, id int) (*model.Release, error)
}

// LinerNotes provides album descriptions.
type LinerNotes interface {
	Description(ctx context.Context, artist, title, query string) (string, error)
}

// Request describes the album to look up. Only Dir is required; artist and
// title default to the parts of the canonical directory name.
type Request struct {
	Dir     string
	Artist  string
	Title   string
	Query   string
	Genre   string
	Country string
	Year    int

	// ReleaseID or URL pin an exact release.
	ReleaseID int
	URL       string

	// Match is the expected number of tracks: -1 skips the check, 0 uses
	// the number of audio files in Dir.
	Match int

	// Analogue accepts vinyl-only releases from the first pick on.
	Analogue bool
}

var (
	yearInName  = regexp.MustCompile(`\[\d{4}]`)
	artistNoise = regexp.MustCompile(`[_\-]+`)
)

// ArtistTitleFromDir reads artist and title from a canonical directory name
// "Artist_-_[Year]_Title". Names without a bracketed year give empty strings.
func ArtistTitleFromDir(dir string) (artist, title string) {
	parts := yearInName.Split(filepath.Base(filepath.Clean(dir)), -1)
	if len(parts) < 2 {
		return "", ""
	}
	artist = strings.TrimSpace(artistNoise.ReplaceAllString(parts[0], " "))
	title = strings.TrimSpace(strings.ReplaceAll(parts[1], "_", " "))
	return artist, title
}

// ExpectedTracks reports whether release has the expected number of audio
// tracks. match < 0 accepts any release; match == 0 compares with the number
// of audio files in dir.
func ExpectedTracks(release *model.Release, match int, dir string) (bool, error) {
	if match < 0 {
		return true, nil
	}
	want := release.AudioTrackCount()
	if match > 0 {
		return match == want, nil
	}
	files, err := audio.ListFiles(dir)
	if err != nil {
		return false, err
	}
	n := 0
	for _, f := range files {
		if audio.IsAudioFile(f) {
			n++
		}
	}
	return n == want, nil
}

// Prefer picks the first release with credits. Unless analogue is set, a
// release must also come in a format other than vinyl. It returns nil when
// no release qualifies.
func Prefer(releases []*model.Release, analogue bool) *model.Release {
	for _, r := range releases {
		if !r.HasCredits() {
			continue
		}
		if analogue || !r.IsAnalogueOnly() {
			return r
		}
	}
	return nil
}

// Reconciler finds the catalog release of an album directory and turns it
// into an album sheet.
type Reconciler struct {
	catalog  Catalog
	liner    LinerNotes
	progress progress.Func
}

// New creates a reconciler. liner may be nil to skip descriptions.
func New(catalog Catalog, linerNotes LinerNotes, onProgress progress.Func) *Reconciler {
	return &Reconciler{catalog: catalog, liner: linerNotes, progress: onProgress}
}

// resolved is a Request with its defaults filled in.
type resolved struct {
	Request
	pinned int
}

func (r *Reconciler) resolve(req Request) resolved {
	res := resolved{Request: req, pinned: req.ReleaseID}
	if req.URL != "" {
		id, slug := discogs.ParseReleaseURL(req.URL)
		if res.pinned == 0 {
			res.pinned = id
		}
		if res.Artist == "" && res.Title != "" {
			if a := discogs.ArtistFromSlug(slug, res.Title); a != "" {
				res.Artist = strings.ReplaceAll(a, "-", " ")
			}
		}
	}
	if res.Artist == "" || res.Title == "" {
		artist, title := ArtistTitleFromDir(req.Dir)
		if res.Artist == "" {
			res.Artist = artist
		}
		if res.Title == "" {
			res.Title = title
		}
	}
	if res.Query == "" {
		res.Query = strings.TrimSpace(res.Artist + " " + res.Title)
	}
	return res
}

// Fetch looks the album up and builds its sheet. Jazz releases get a
// description from the liner notes.
func (r *Reconciler) Fetch(ctx context.Context, req Request) (*sheet.Sheet, *model.Release, error) {
	res := r.resolve(req)
	r.progress.Emitf(progress.LevelVerbose, "Looking up %q by %q", res.Title, res.Artist)

	found, err := r.candidates(ctx, res)
	if err != nil {
		return nil, nil, err
	}
	if len(found) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(req.Dir), ErrNoMatch)
	}

	release := Prefer(found, req.Analogue)
	if release == nil {
		release = Prefer(found, true)
	}
	if release == nil {
		release = found[0]
	}
	r.progress.Emitf(progress.LevelInfo, "Using release %d: %s - %s", release.ID, release.ArtistName(), release.Title)

	var description string
	if r.liner != nil && sheet.IsJazz(strings.Join(release.Genres, ", ")) {
		description, err = r.liner.Description(ctx, res.Artist, res.Title, req.Query)
		switch {
		case errors.Is(err, liner.ErrNoText):
			r.progress.Emitf(progress.LevelVerbose, "No liner notes for %q", res.Title)
		case err != nil:
			r.progress.Emitf(progress.LevelWarning, "Liner notes for %q: %v", res.Title, err)
		}
	}
	return sheet.Build(release, description), release, nil
}

func (r *Reconciler) candidates(ctx context.Context, res resolved) ([]*model.Release, error) {
	var results []discogs.Result
	if res.pinned != 0 {
		results = []discogs.Result{{ID: res.pinned, Type: "release"}}
	} else {
		params := discogs.SearchParams{
			Query:   res.Query,
			Artist:  res.Artist,
			Title:   res.Title,
			Genre:   res.Genre,
			Country: res.Country,
		}
		if res.Year > 0 {
			params.Year = strconv.Itoa(res.Year)
		}
		var err error
		if results, err = r.catalog.Search(ctx, params); err != nil {
			return nil, err
		}
		if len(results) == 0 {
			r.progress.Emitf(progress.LevelVerbose, "No hits, searching for %q only", res.Query)
			if results, err = r.catalog.Search(ctx, discogs.SearchParams{Query: res.Query}); err != nil {
				return nil, err
			}
		}
	}

	local := match.Candidate{Artist: res.Artist, Title: res.Title, Query: res.Query}
	if res.pinned != 0 {
		local.ReleaseID = strconv.Itoa(res.pinned)
	}

	var found []*model.Release
	for _, hit := range results {
		release, err := r.lookup(ctx, hit.ID)
		if errors.Is(err, discogs.ErrNotFound) {
			r.progress.Emitf(progress.LevelVerbose, "Release %d not found", hit.ID)
			continue
		}
		if err != nil {
			return nil, err
		}

		remote := match.Candidate{Artist: release.ArtistName(), Title: release.Title}
		if !match.Matches(local, remote) {
			r.progress.Emitf(progress.LevelVerbose, "Skipping %d: %s - %s", release.ID, remote.Artist, remote.Title)
			continue
		}
		if res.pinned == 0 {
			ok, err := ExpectedTracks(release, res.Match, res.Dir)
			if err != nil {
				return nil, err
			}
			if !ok {
				r.progress.Emitf(progress.LevelVerbose, "Skipping %d: %d tracks", release.ID, release.AudioTrackCount())
				continue
			}
		}
		found = append(found, release)
	}
	return found, nil
}

// lookup fetches a release, falling back to the master with the same id.
func (r *Reconciler) lookup(ctx context.Context, id int) (*model.Release, error) {
	release, err := r.catalog.Release(ctx, id)
	if errors.Is(err, discogs.ErrNotFound) {
		return r.catalog.Master(ctx, id)
	}
	return release, err
}
