package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/handiism/musicbase/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "musicbase.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUpsertAlbum(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	album := model.Album{
		Title:  "Relayer",
		Artist: "Yes",
		Date:   model.YearDate(1974),
		Label:  "Atlantic K 50096",
		Path:   "Yes_-_Relayer_[1974]",
	}

	stored, changed, err := s.UpsertAlbum(ctx, album)
	require.NoError(t, err)
	assert.NotZero(t, stored.ID)
	assert.Equal(t, model.AlbumFields(), changed)

	again, changed, err := s.UpsertAlbum(ctx, album)
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, stored.ID, again.ID)
	assert.Equal(t, 1974, again.Year())

	album.Comment = "Recorded-By - Eddy Offord"
	album.Label = ""
	updated, changed, err := s.UpsertAlbum(ctx, album)
	require.NoError(t, err)
	assert.Equal(t, []model.AlbumField{model.AlbumFieldComment, model.AlbumFieldLabel}, changed)
	assert.Equal(t, stored.ID, updated.ID)

	got, err := s.AlbumByPath(ctx, "Yes_-_Relayer_[1974]")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Recorded-By - Eddy Offord", got.Comment)
	assert.Empty(t, got.Label)
	assert.True(t, got.Date.Equal(model.YearDate(1974)))

	n, err := s.CountAlbums(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAlbumByPathMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.AlbumByPath(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAlbumPaths(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, a := range []model.Album{
		{Title: "CD1", Artist: "Various", Path: "Various_-_Hits"},
		{Title: "CD2", Artist: "Various", Path: "Various_-_Hits"},
		{Title: "Fragile", Artist: "Yes", Path: "Yes_-_Fragile_[1971]"},
	} {
		_, _, err := s.UpsertAlbum(ctx, a)
		require.NoError(t, err)
	}

	paths, err := s.AlbumPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Various_-_Hits": true, "Yes_-_Fragile_[1971]": true}, paths)
}

func TestUpsertSong(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	album, _, err := s.UpsertAlbum(ctx, model.Album{Title: "Fragile", Artist: "Yes", Path: "Yes_-_Fragile_[1971]"})
	require.NoError(t, err)

	songs := []model.Song{
		{AlbumID: album.ID, Title: "Heart of the Sunrise", TrackID: 9, Artist: "Yes", File: "09_Heart_of_the_Sunrise.flac"},
		{AlbumID: album.ID, Title: "Roundabout", TrackID: 1, Artist: "Yes", File: "01_Roundabout.flac", Genre: "Rock"},
	}
	for _, song := range songs {
		_, changed, err := s.UpsertSong(ctx, song)
		require.NoError(t, err)
		assert.Equal(t, model.SongFields(), changed)
	}

	songs[1].Genre = "Prog Rock"
	songs[1].Composer = "Anderson, Jon"
	_, changed, err := s.UpsertSong(ctx, songs[1])
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.SongField{model.SongFieldGenre, model.SongFieldComposer}, changed)

	got, err := s.SongsByAlbum(ctx, album.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Roundabout", got[0].Title)
	assert.Equal(t, "Prog Rock", got[0].Genre)
	assert.Equal(t, "Anderson, Jon", got[0].Composer)
	assert.Equal(t, 9, got[1].TrackID)

	n, err := s.CountSongs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "musicbase.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, "UPDATE schema_version SET version = ?", schemaVersion+1)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(ctx, path)
	assert.True(t, errors.Is(err, ErrSchemaMismatch), "got %v", err)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "musicbase.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, _, err = s.UpsertAlbum(ctx, model.Album{Title: "Drama", Artist: "Yes", Path: "Yes_-_Drama_[1980]"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.CountAlbums(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIsSQLiteBusy(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("database is locked"), true},
		{errors.New("SQLITE_BUSY: try again"), true},
		{errors.New("no such table"), false},
	}
	for _, tt := range tests {
		if got := isSQLiteBusy(tt.err); got != tt.want {
			t.Errorf("isSQLiteBusy(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRetryOnBusy(t *testing.T) {
	calls := 0
	err := retryOnBusy(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = retryOnBusy(context.Background(), func() error {
		calls++
		return errors.New("constraint failed")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
