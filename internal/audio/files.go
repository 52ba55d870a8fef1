package audio

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose tags cannot be read or written.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// audioExtensions are the files counted as album tracks.
var audioExtensions = map[string]bool{
	".ape":  true,
	".flac": true,
	".mp3":  true,
	".ogg":  true,
	".wma":  true,
}

// IsAudioFile reports whether name has an audio file extension.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsTaggable reports whether the tags of name can be read and written.
func IsTaggable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3", ".flac":
		return true
	default:
		return false
	}
}

// ListFiles returns the sorted names of the audio files directly inside dir.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsAudioFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
