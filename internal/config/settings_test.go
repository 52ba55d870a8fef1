package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/musicbase/internal/audio"
	"github.com/handiism/musicbase/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	s := DefaultSettings()
	s.BaseDir = "/srv/music"
	s.CatalogToken = "secret"
	s.PlaylistFormat = "pls"
	s.TagGenre = "keep"
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_dir = \"/data/music\"\nmax_retries = 2\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/music", s.BaseDir)
	assert.Equal(t, 2, s.MaxRetries)
	assert.Equal(t, DefaultSettings().LinerNotesURL, s.LinerNotesURL)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "base_directory = \"/x\"\n"},
		{"bad action", "tag_genre = \"rewrite\"\n"},
		{"zero workers", "max_concurrent_dirs = 0\n"},
		{"not toml", "base_dir = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestConverters(t *testing.T) {
	s := DefaultSettings()
	s.TagComments = "empty"
	s.TagAlbum = "keep"
	s.PlaylistFormat = "zpl"

	tc := s.ToTagConfig()
	assert.True(t, tc.ModifyTags)
	assert.Equal(t, audio.TagEmpty, tc.Comments)
	assert.Equal(t, audio.TagDoNotModify, tc.Album)
	assert.Equal(t, audio.TagModify, tc.TrackTitle)

	assert.Equal(t, model.PlaylistFormatZPL, s.ToPlaylistFormat())

	co := s.ToCoverOptions()
	assert.Equal(t, 1000, co.MaxSize)
	assert.True(t, co.JPEG)
}
