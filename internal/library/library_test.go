package library

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/handiism/musicbase/internal/audio"
	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	albums map[model.AlbumKey]model.Album
	songs  map[model.SongKey]model.Song
}

func newMemStore() *memStore {
	return &memStore{albums: map[model.AlbumKey]model.Album{}, songs: map[model.SongKey]model.Song{}}
}

func (m *memStore) AlbumPaths(context.Context) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := map[string]bool{}
	for _, a := range m.albums {
		paths[a.Path] = true
	}
	return paths, nil
}

func (m *memStore) UpsertAlbum(_ context.Context, a model.Album) (model.Album, []model.AlbumField, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.albums[a.Key()]
	if !ok {
		a.ID = int64(len(m.albums) + 1)
		m.albums[a.Key()] = a
		return a, model.AlbumFields(), nil
	}
	fields := old.Diff(a)
	old.Apply(a, fields)
	m.albums[a.Key()] = old
	return old, fields, nil
}

func (m *memStore) UpsertSong(_ context.Context, s model.Song) (model.Song, []model.SongField, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := model.SongKey{Title: s.Title, File: s.File, Artist: s.Artist}
	old, ok := m.songs[key]
	if !ok {
		s.ID = int64(len(m.songs) + 1)
		m.songs[key] = s
		return s, model.SongFields(), nil
	}
	fields := old.Diff(s)
	old.Apply(s, fields)
	m.songs[key] = old
	return old, fields, nil
}

func fileTags(dir, file string, kv ...string) model.FileTags {
	t := model.NewFileTags(dir, file)
	for i := 0; i+1 < len(kv); i += 2 {
		t.Add(kv[i], kv[i+1])
	}
	return t
}

func writeTaggedMP3(t *testing.T, dir, name string, tags audio.TrackTags) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 16), 0o644))
	require.NoError(t, audio.NewTagger(audio.DefaultTagConfig()).Write(path, tags, nil))
}

func TestAlbumTitle(t *testing.T) {
	tests := []struct {
		name string
		tags []model.FileTags
		want string
	}{
		{"album tag", []model.FileTags{fileTags("Yes_-_[1972]_Close", "a.mp3", "album", "Close to the Edge")}, "Close to the Edge"},
		{"untagged", []model.FileTags{fileTags("Yes_-_[1972]_Close", "a.mp3")}, "Yes_-_[1972]_Close"},
		{"compilation", []model.FileTags{fileTags("Various_-_Hits", "a.mp3", "album", "Hits")}, "Various_-_Hits"},
		{"no files", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlbumTitle(tt.tags); got != tt.want {
				t.Errorf("AlbumTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlbumYear(t *testing.T) {
	tests := []struct {
		name  string
		tags  []model.FileTags
		sheet *sheet.Sheet
		want  int
	}{
		{"tag", []model.FileTags{fileTags("Yes", "a.mp3", "year", "1972-09-13")}, nil, 1972},
		{"later tag", []model.FileTags{fileTags("Yes", "a.mp3"), fileTags("Yes", "b.mp3", "year", "1972")}, nil, 1972},
		{"sheet wins", []model.FileTags{fileTags("Yes", "a.mp3", "year", "2003")}, &sheet.Sheet{Year: 1972}, 1972},
		{"unreadable", []model.FileTags{fileTags("Yes", "a.mp3", "year", "unknown")}, nil, 1900},
		{"compilation", []model.FileTags{fileTags("Various_-_Hits", "a.mp3", "year", "1999")}, nil, 1900},
		{"various sheet", []model.FileTags{fileTags("Hits", "a.mp3", "year", "1999")}, &sheet.Sheet{Artist: "Various"}, 1900},
		{"nothing", nil, nil, 1900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlbumYear(tt.tags, tt.sheet); got != tt.want {
				t.Errorf("AlbumYear() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAlbumArtist(t *testing.T) {
	tests := []struct {
		name  string
		tags  []model.FileTags
		sheet *sheet.Sheet
		want  string
	}{
		{"artist", []model.FileTags{fileTags("Yes_-_Fragile", "a.mp3", "artist", "Yes", "albumartist", "YES")}, nil, "Yes"},
		{"album artist", []model.FileTags{fileTags("Yes_-_Fragile", "a.mp3", "albumartist", "YES")}, nil, "YES"},
		{"composer", []model.FileTags{fileTags("Bach", "a.mp3", "composer", "J. S. Bach")}, nil, "J. S. Bach"},
		{"sheet fallback", []model.FileTags{fileTags("Yes_-_Fragile", "a.mp3")}, &sheet.Sheet{Artist: "Yes"}, "Yes"},
		{"compilation", []model.FileTags{fileTags("Various_-_Hits", "a.mp3", "artist", "Abba")}, &sheet.Sheet{Artist: "Various Artists"}, "Various Artists"},
		{"various in title", []model.FileTags{fileTags("Yes_-_Various_Mixes", "a.mp3", "artist", "Yes")}, nil, "Yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlbumArtist(tt.tags, tt.sheet); got != tt.want {
				t.Errorf("AlbumArtist() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlbumLabelAndComposer(t *testing.T) {
	tags := []model.FileTags{fileTags("Yes", "a.mp3", "artist", "Yes"), fileTags("Yes", "b.mp3", "label", "Atlantic")}
	assert.Equal(t, "Atlantic", AlbumLabel(tags, &sheet.Sheet{Label: "Other"}))
	assert.Equal(t, "Other", AlbumLabel(tags[:1], &sheet.Sheet{Label: "Other"}))
	assert.Empty(t, AlbumLabel([]model.FileTags{fileTags("Various", "a.mp3", "label", "K-Tel")}, nil))

	assert.Equal(t, "Yes", AlbumComposer(tags, nil))
	assert.Equal(t, "Anderson", AlbumComposer(tags, &sheet.Sheet{Composer: "Anderson"}))
}

func TestAlbumComment(t *testing.T) {
	tags := []model.FileTags{fileTags("Miles_Davis_-_Kind_of_Blue", "a.mp3", "comment", "ripped", "composer", "Miles Davis")}

	assert.Equal(t, "ripped", AlbumComment(tags, nil))

	sh := &sheet.Sheet{
		Description: "A landmark.",
		Credits:     []string{"Bass - Paul Chambers"},
		Notes:       []string{"Recorded 1959."},
	}
	want := "A landmark.\n" +
		"\n - Bass - Paul Chambers\n - Composed by - Miles Davis\n" +
		"\n - Recorded 1959."
	assert.Equal(t, want, AlbumComment(tags, sh))

	sh.Credits = []string{"Composed By - Bill Evans"}
	sh.Description = ""
	assert.Equal(t, "\n - Composed By - Bill Evans\n\n - Recorded 1959.", AlbumComment(tags, sh))
}

func TestSongComment(t *testing.T) {
	tags := fileTags("d", "a.mp3", "comment", "Live XXXDURATION12:34.5")
	assert.Equal(t, "Live", SongComment(tags, nil))

	track := &sheet.Track{Credits: []string{"Piano - Bill Evans"}}
	assert.Equal(t, "Live\n - Piano - Bill Evans", SongComment(tags, track))
	assert.Equal(t, " - Piano - Bill Evans", SongComment(fileTags("d", "b.mp3"), track))
}

func TestBuildSongs(t *testing.T) {
	sh := &sheet.Sheet{
		Artist: "Yes",
		Genre:  "Rock",
		Year:   1972,
		Tracks: []sheet.Track{
			{Position: "1", Title: "Close to the Edge"},
			{Position: "2", Title: "And You and I", Credits: []string{"Guitar - Steve Howe"}},
		},
	}
	tags := []model.FileTags{
		fileTags("Yes", "02.mp3", "title", "And You and I", "track", "2/3"),
		fileTags("Yes", "01.mp3", "title", "Close to the Edge", "track", "1/3", "year", "2003"),
		fileTags("Yes", "bonus.mp3"),
	}
	album := BuildAlbum("Yes", tags, sh)
	require.Equal(t, 1972, album.Year())
	album.ID = 7

	songs := BuildSongs(album, tags, sh)
	require.Len(t, songs, 3)

	assert.Equal(t, 2, songs[0].TrackID)
	assert.Equal(t, " - Guitar - Steve Howe", songs[0].Comment)
	assert.Equal(t, album.Date, songs[0].Date)
	assert.Equal(t, "Yes", songs[0].Artist)
	assert.Equal(t, "Rock", songs[0].Genre)
	assert.Equal(t, int64(7), songs[0].AlbumID)

	assert.Equal(t, 1, songs[1].TrackID)
	assert.Equal(t, 2003, songs[1].Date.Year())

	assert.Equal(t, -1, songs[2].TrackID)
	assert.Equal(t, "bonus", songs[2].Title)
}

func TestBuildSongsDistinctTrackIDs(t *testing.T) {
	tags := []model.FileTags{
		fileTags("Yes", "a.mp3", "track", "1"),
		fileTags("Yes", "b.mp3", "track", "01"),
		fileTags("Yes", "c.mp3", "track", "2"),
	}
	songs := BuildSongs(model.Album{}, tags, nil)
	got := []int{songs[0].TrackID, songs[1].TrackID, songs[2].TrackID}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestAlbumDateFromSheet(t *testing.T) {
	sh := &sheet.Sheet{Released: "10/2/2009", Year: 2009}
	a := BuildAlbum("x", []model.FileTags{fileTags("x", "a.mp3")}, sh)
	assert.Equal(t, "2009-02-10", a.Date.Format("2006-01-02"))
}

func makeCollection(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	album := filepath.Join(base, "Yes_-_[1972]_Close_to_the_Edge")
	require.NoError(t, os.MkdirAll(album, 0o755))
	writeTaggedMP3(t, album, "01_Close_to_the_Edge.mp3", audio.TrackTags{
		Title: "Close to the Edge", Artist: "Yes", Album: "Close to the Edge", Year: "1972", TrackNumber: 1, TotalTracks: 2,
	})
	writeTaggedMP3(t, album, "02_And_You_and_I.mp3", audio.TrackTags{
		Title: "And You and I", Artist: "Yes", Album: "Close to the Edge", Year: "1972", TrackNumber: 2, TotalTracks: 2,
	})

	hidden := filepath.Join(base, ".trash")
	require.NoError(t, os.MkdirAll(hidden, 0o755))
	writeTaggedMP3(t, hidden, "x.mp3", audio.TrackTags{Title: "Hidden"})

	require.NoError(t, os.MkdirAll(filepath.Join(base, "Empty"), 0o755))
	return base
}

func TestCollect(t *testing.T) {
	base := makeCollection(t)
	store := newMemStore()
	ctx := context.Background()

	stats, err := NewCollector(store, base, Options{}, nil).Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 1, stats.NewOrModified)
	assert.Equal(t, 2, stats.Songs)
	assert.Len(t, store.albums, 1)
	assert.Len(t, store.songs, 2)

	for _, a := range store.albums {
		assert.Equal(t, "Close to the Edge", a.Title)
		assert.Equal(t, "Yes", a.Artist)
		assert.Equal(t, 1972, a.Year())
		assert.Equal(t, "Yes_-_[1972]_Close_to_the_Edge", a.Path)
	}

	stats, err = NewCollector(store, base, Options{}, nil).Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Scanned)
	assert.Equal(t, 1, stats.Skipped)

	stats, err = NewCollector(store, base, Options{Update: true}, nil).Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 0, stats.NewOrModified)
}

func TestCollectLimit(t *testing.T) {
	base := makeCollection(t)
	second := filepath.Join(base, "Yes_-_[1971]_Fragile")
	require.NoError(t, os.MkdirAll(second, 0o755))
	writeTaggedMP3(t, second, "01_Roundabout.mp3", audio.TrackTags{Title: "Roundabout", Artist: "Yes", TrackNumber: 1})

	stats, err := NewCollector(newMemStore(), base, Options{Limit: 1}, nil).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.NewOrModified)
}

func TestSearch(t *testing.T) {
	base := makeCollection(t)
	s := NewSearcher(base, 2, nil)
	ctx := context.Background()

	hits, err := s.Search(ctx, Query{Text: "You"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{Directory: "Yes_-_[1972]_Close_to_the_Edge", File: "02_And_You_and_I.mp3", Tag: "title", Value: "And You and I"}, hits[0])

	hits, err = s.Search(ctx, Query{Text: "^Close", Regex: true, Tag: "album"})
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = s.Search(ctx, Query{Text: "Yes", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = s.Search(ctx, Query{Text: "Hidden"})
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, err = s.Search(ctx, Query{Text: "(", Regex: true})
	assert.Error(t, err)
}

func TestQueryMatch(t *testing.T) {
	tags := fileTags("d", "a.mp3", "title", "Roundabout", "genre", "Prog Rock")
	hits, err := Query{Text: "round", Tag: "title"}.Match(tags)
	require.NoError(t, err)
	assert.Empty(t, hits, "plain search is case sensitive")

	hits, err = Query{Text: "(?i)round", Regex: true}.Match(tags)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "title", hits[0].Tag)
}
