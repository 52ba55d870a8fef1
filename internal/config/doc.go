// Package config provides configuration management for musicbase.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values and XDG locations
//   - Conversion to audio.TagConfig, playlist format and cover options
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Collection in the XDG music directory
//	// Database under $XDG_DATA_HOME/musicbase
//	// Tagging enabled, unwanted frames cleared
//
// # Loading from File
//
//	path, _ := config.DefaultPath() // $XDG_CONFIG_HOME/musicbase/config.toml
//	settings, err := config.Load(path)
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.BaseDir = "/srv/music"
//	err := settings.Save(path)
//
// # Configuration Options
//
// Settings includes options for:
//   - Collection and database locations
//   - Catalog access (URL, token, user agent, timeout)
//   - Concurrency limits
//   - Retry behavior
//   - Per-field tag edit actions
//   - Cover art handling
//   - Playlist generation
package config
