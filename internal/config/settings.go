package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/handiism/musicbase/internal/audio"
	ioutils "github.com/handiism/musicbase/internal/io"
	"github.com/handiism/musicbase/internal/model"
	"github.com/pelletier/go-toml/v2"
)

// Settings holds all configuration options.
type Settings struct {
	// Collection
	BaseDir      string `toml:"base_dir"`
	DatabasePath string `toml:"database_path"`

	// Catalog and liner notes
	CatalogURL     string  `toml:"catalog_url"`
	CatalogToken   string  `toml:"catalog_token"`
	UserAgent      string  `toml:"user_agent"`
	RequestTimeout float64 `toml:"request_timeout"` // seconds
	LinerNotesURL  string  `toml:"liner_notes_url"`

	// Concurrency and retries
	MaxConcurrentDirs  int     `toml:"max_concurrent_dirs"`
	MaxConcurrentFiles int     `toml:"max_concurrent_files"`
	MaxRetries         int     `toml:"max_retries"`
	RetryCooldown      float64 `toml:"retry_cooldown"` // seconds
	RetryExponent      float64 `toml:"retry_exponent"`

	// Tag settings. Field actions are "modify", "empty" or "keep".
	ModifyTags        bool   `toml:"modify_tags"`
	ClearUnwantedTags bool   `toml:"clear_unwanted_tags"`
	TagTitle          string `toml:"tag_title"`
	TagArtist         string `toml:"tag_artist"`
	TagAlbumArtist    string `toml:"tag_album_artist"`
	TagAlbum          string `toml:"tag_album"`
	TagComposer       string `toml:"tag_composer"`
	TagGenre          string `toml:"tag_genre"`
	TagYear           string `toml:"tag_year"`
	TagTrackNumber    string `toml:"tag_track_number"`
	TagComments       string `toml:"tag_comments"`
	RenameTracks      bool   `toml:"rename_tracks"`

	// Cover art settings
	SaveCoverArtInTags   bool `toml:"save_cover_art_in_tags"`
	DownloadCoverArt     bool `toml:"download_cover_art"`
	CoverArtMaxSize      int  `toml:"cover_art_max_size"`
	ConvertCoverArtToJPG bool `toml:"convert_cover_art_to_jpg"`

	// Playlist settings
	CreatePlaylist bool   `toml:"create_playlist"`
	PlaylistFormat string `toml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `toml:"m3u_extended"`
}

// DefaultPath returns the configuration file location under the XDG
// config home, creating its directory if needed.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("musicbase", "config.toml"))
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		BaseDir:      xdg.UserDirs.Music,
		DatabasePath: filepath.Join(xdg.DataHome, "musicbase", "musicbase.db"),

		CatalogURL:     "https://api.discogs.com",
		UserAgent:      "musicbase/1.0 +https://github.com/handiism/musicbase",
		RequestTimeout: 30,
		LinerNotesURL:  "https://jazzforum.com.pl/main/cd/",

		MaxConcurrentDirs:  4,
		MaxConcurrentFiles: 8,
		MaxRetries:         5,
		RetryCooldown:      0.2,
		RetryExponent:      4.0,

		ModifyTags:        true,
		ClearUnwantedTags: true,
		TagTitle:          "modify",
		TagArtist:         "modify",
		TagAlbumArtist:    "modify",
		TagAlbum:          "keep",
		TagComposer:       "modify",
		TagGenre:          "modify",
		TagYear:           "modify",
		TagTrackNumber:    "modify",
		TagComments:       "modify",
		RenameTracks:      true,

		SaveCoverArtInTags:   true,
		DownloadCoverArt:     false,
		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// Load reads settings from a TOML file. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports settings that cannot work.
func (s *Settings) Validate() error {
	var problems []string
	if s.MaxConcurrentDirs < 1 {
		problems = append(problems, "max_concurrent_dirs must be at least 1")
	}
	if s.MaxConcurrentFiles < 1 {
		problems = append(problems, "max_concurrent_files must be at least 1")
	}
	if s.MaxRetries < 1 {
		problems = append(problems, "max_retries must be at least 1")
	}
	if s.RequestTimeout <= 0 {
		problems = append(problems, "request_timeout must be positive")
	}
	for name, v := range map[string]string{
		"tag_title":        s.TagTitle,
		"tag_artist":       s.TagArtist,
		"tag_album_artist": s.TagAlbumArtist,
		"tag_album":        s.TagAlbum,
		"tag_composer":     s.TagComposer,
		"tag_genre":        s.TagGenre,
		"tag_year":         s.TagYear,
		"tag_track_number": s.TagTrackNumber,
		"tag_comments":     s.TagComments,
	} {
		switch v {
		case "modify", "empty", "keep":
		default:
			problems = append(problems, fmt.Sprintf("%s must be modify, empty or keep, got %q", name, v))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ToTagConfig converts settings to an audio.TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	return &audio.TagConfig{
		ModifyTags:    s.ModifyTags,
		ClearUnwanted: s.ClearUnwantedTags,
		TrackTitle:    audio.ParseTagEditAction(s.TagTitle),
		Artist:        audio.ParseTagEditAction(s.TagArtist),
		AlbumArtist:   audio.ParseTagEditAction(s.TagAlbumArtist),
		Album:         audio.ParseTagEditAction(s.TagAlbum),
		Composer:      audio.ParseTagEditAction(s.TagComposer),
		Genre:         audio.ParseTagEditAction(s.TagGenre),
		Year:          audio.ParseTagEditAction(s.TagYear),
		TrackNumber:   audio.ParseTagEditAction(s.TagTrackNumber),
		Comments:      audio.ParseTagEditAction(s.TagComments),
	}
}

// ToPlaylistFormat converts the playlist_format value.
func (s *Settings) ToPlaylistFormat() model.PlaylistFormat {
	return model.ParsePlaylistFormat(s.PlaylistFormat)
}

// ToCoverOptions converts the cover art settings.
func (s *Settings) ToCoverOptions() ioutils.CoverOptions {
	return ioutils.CoverOptions{MaxSize: s.CoverArtMaxSize, JPEG: s.ConvertCoverArtToJPG}
}
