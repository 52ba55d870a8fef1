package model

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Album is one album directory of the collection as it is stored in the
// database.
//
// An album is identified by the triple (Title, Artist, Path). Everything else
// is derived from the tags of its files and the album sheet and may change
// between collection runs; Diff reports which of those fields changed.
//
// Example:
//
//	album := model.Album{
//	    Title:  "Close to the Edge",
//	    Artist: "Yes",
//	    Date:   model.YearDate(1972),
//	    Path:   "Yes_-_[1972]_Close_to_the_Edge",
//	}
type Album struct {
	// ID is the database key. Zero means the album has not been stored yet.
	ID int64

	// Title is the album title, usually the album tag of the first file.
	Title string

	// Artist is the album artist.
	Artist string

	// Date is the release date. Only the year is meaningful for most albums.
	Date time.Time

	// Comment is the album level comment built from description, credits and notes.
	Comment string

	// Label is the record label with catalog number, empty for compilations.
	Label string

	// Path is the album directory relative to the collection base directory.
	Path string
}

// AlbumField names one mutable field of an Album.
type AlbumField string

const (
	AlbumFieldDate    AlbumField = "date"
	AlbumFieldComment AlbumField = "comment"
	AlbumFieldLabel   AlbumField = "label"
)

// albumFields lists the mutable fields in a stable order.
var albumFields = []AlbumField{AlbumFieldDate, AlbumFieldComment, AlbumFieldLabel}

// AlbumFields returns every mutable album field.
func AlbumFields() []AlbumField {
	return append([]AlbumField(nil), albumFields...)
}

// Key returns the identity of the album.
func (a Album) Key() AlbumKey {
	return AlbumKey{Title: a.Title, Artist: a.Artist, Path: a.Path}
}

// AlbumKey is the natural key of an album.
type AlbumKey struct {
	Title  string
	Artist string
	Path   string
}

// Year returns the release year, or 0 when no date is set.
func (a Album) Year() int {
	if a.Date.IsZero() {
		return 0
	}
	return a.Date.Year()
}

// Diff returns the mutable fields whose values differ between a and other.
// Identity fields and ID are not compared.
func (a Album) Diff(other Album) []AlbumField {
	var changed []AlbumField
	for _, f := range albumFields {
		if a.value(f) != other.value(f) {
			changed = append(changed, f)
		}
	}
	return changed
}

// Apply copies the named fields from src into a.
func (a *Album) Apply(src Album, fields []AlbumField) {
	for _, f := range fields {
		switch f {
		case AlbumFieldDate:
			a.Date = src.Date
		case AlbumFieldComment:
			a.Comment = src.Comment
		case AlbumFieldLabel:
			a.Label = src.Label
		}
	}
}

func (a Album) value(f AlbumField) string {
	switch f {
	case AlbumFieldDate:
		return a.Date.Format(time.DateOnly)
	case AlbumFieldComment:
		return a.Comment
	case AlbumFieldLabel:
		return a.Label
	default:
		return ""
	}
}

// PlaylistPath returns the playlist file for the album inside dir, named
// after the album directory.
func (a Album) PlaylistPath(dir string, format PlaylistFormat) string {
	name := sanitizeFileName(filepath.Base(a.Path))
	if name == "" || name == "." {
		name = sanitizeFileName(a.Title)
	}
	return filepath.Join(dir, name+format.Extension())
}

// YearDate returns January 1st of year in UTC.
func YearDate(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a configuration value ("m3u", "pls", "wpl",
// "zpl") to a PlaylistFormat. Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
//
// Returns:
//   - ".m3u" for PlaylistFormatM3U
//   - ".pls" for PlaylistFormatPLS
//   - ".wpl" for PlaylistFormatWPL
//   - ".zpl" for PlaylistFormatZPL
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatM3U:
		return ".m3u"
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
func sanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
