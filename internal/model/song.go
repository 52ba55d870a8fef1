package model

import (
	"strconv"
	"time"
)

// Song is one audio file of an album as it is stored in the database.
//
// A song is identified by (Title, File, Artist). TrackID is the rank of the
// file's track number within its album, starting at 1; -1 means the track
// number could not be placed.
type Song struct {
	ID        int64
	AlbumID   int64
	Title     string
	TrackID   int
	Genre     string
	Artist    string
	Composer  string
	Performer string
	File      string
	Comment   string
	Date      time.Time
}

// SongField names one mutable field of a Song.
type SongField string

const (
	SongFieldTrackID   SongField = "track_id"
	SongFieldGenre     SongField = "genre"
	SongFieldComposer  SongField = "composer"
	SongFieldPerformer SongField = "performer"
	SongFieldComment   SongField = "comment"
	SongFieldDate      SongField = "date"
	SongFieldAlbumID   SongField = "album_id"
)

var songFields = []SongField{
	SongFieldTrackID,
	SongFieldGenre,
	SongFieldComposer,
	SongFieldPerformer,
	SongFieldComment,
	SongFieldDate,
	SongFieldAlbumID,
}

// SongFields returns every mutable song field.
func SongFields() []SongField {
	return append([]SongField(nil), songFields...)
}

// SongKey is the natural key of a song.
type SongKey struct {
	Title  string
	File   string
	Artist string
}

// Key returns the identity of the song.
func (s Song) Key() SongKey {
	return SongKey{Title: s.Title, File: s.File, Artist: s.Artist}
}

// Diff returns the mutable fields whose values differ between s and other.
func (s Song) Diff(other Song) []SongField {
	var changed []SongField
	for _, f := range songFields {
		if s.value(f) != other.value(f) {
			changed = append(changed, f)
		}
	}
	return changed
}

// Apply copies the named fields from src into s.
func (s *Song) Apply(src Song, fields []SongField) {
	for _, f := range fields {
		switch f {
		case SongFieldTrackID:
			s.TrackID = src.TrackID
		case SongFieldGenre:
			s.Genre = src.Genre
		case SongFieldComposer:
			s.Composer = src.Composer
		case SongFieldPerformer:
			s.Performer = src.Performer
		case SongFieldComment:
			s.Comment = src.Comment
		case SongFieldDate:
			s.Date = src.Date
		case SongFieldAlbumID:
			s.AlbumID = src.AlbumID
		}
	}
}

func (s Song) value(f SongField) string {
	switch f {
	case SongFieldTrackID:
		return strconv.Itoa(s.TrackID)
	case SongFieldGenre:
		return s.Genre
	case SongFieldComposer:
		return s.Composer
	case SongFieldPerformer:
		return s.Performer
	case SongFieldComment:
		return s.Comment
	case SongFieldDate:
		return s.Date.Format(time.DateOnly)
	case SongFieldAlbumID:
		return strconv.FormatInt(s.AlbumID, 10)
	default:
		return ""
	}
}
