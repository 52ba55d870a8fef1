package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	ioutils "github.com/handiism/musicbase/internal/io"
	"github.com/handiism/musicbase/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrNoSheet is returned when an album directory has no sheet.
var ErrNoSheet = errors.New("no album sheet")

// Sheet is the YAML document kept next to the audio files of an album.
// It is written from a catalog release and may be edited by hand before
// the tags are set from it.
type Sheet struct {
	Title       string   `yaml:"title"`
	Series      string   `yaml:"series"`
	Artist      string   `yaml:"artist"`
	Composer    string   `yaml:"composer,omitempty"`
	Performer   string   `yaml:"performer,omitempty"`
	Label       string   `yaml:"label"`
	Released    string   `yaml:"released"`
	Year        int      `yaml:"year"`
	Genre       string   `yaml:"genre"`
	Style       string   `yaml:"style"`
	Tracks      []Track  `yaml:"tracks"`
	Credits     []string `yaml:"credits"`
	Description string   `yaml:"description"`
	Notes       []string `yaml:"notes"`
}

var (
	genreSeparator = regexp.MustCompile(`, *`)
	noteBreak      = regexp.MustCompile(`[\r\n]+`)
)

// IsJazz reports whether one of the comma separated genres is "Jazz".
func IsJazz(genre string) bool {
	if genre == "" {
		return false
	}
	for _, part := range genreSeparator.Split(genre, -1) {
		if part == "Jazz" {
			return true
		}
	}
	return false
}

// IsJazz reports whether the sheet's genre includes jazz.
func (s *Sheet) IsJazz() bool {
	return IsJazz(s.Genre)
}

// IsClassical reports whether the sheet's genre is classical music or opera,
// where the first artist is the composer.
func (s *Sheet) IsClassical() bool {
	switch strings.ToLower(strings.TrimSpace(s.Genre)) {
	case "classical", "opera":
		return true
	default:
		return false
	}
}

// ComposerCredit reports whether a credit line names a composer.
func (s *Sheet) ComposerCredit() bool {
	for _, c := range s.Credits {
		if strings.HasPrefix(c, "Composed-By") || strings.HasPrefix(c, "Composed By") {
			return true
		}
	}
	return false
}

// Build creates a sheet from a catalog release. description is used only
// for jazz releases; callers fetch it from the liner-notes site.
func Build(r *model.Release, description string) *Sheet {
	s := &Sheet{
		Title:  r.Title,
		Series: r.SeriesName(),
		Artist: r.ArtistName(),
		Label:  r.LabelName(),
		Genre:  strings.Join(r.Genres, ", "),
		Style:  strings.Join(r.Styles, ", "),
	}

	s.Released, s.Year = releaseDate(r.Released)
	if r.Year > 0 {
		s.Year = r.Year
	}

	for _, t := range r.Tracklist {
		if !t.IsAudio() {
			continue
		}
		track := Track{Position: t.Position, Title: t.Title, Duration: t.Duration}
		for _, c := range t.Credits {
			track.Credits = append(track.Credits, model.Credit{Name: c.Name, Role: c.Role}.String())
		}
		s.Tracks = append(s.Tracks, track)
	}

	for _, c := range r.Credits {
		s.Credits = append(s.Credits, c.String())
	}

	if s.IsJazz() {
		s.Description = description
	}

	for _, note := range noteBreak.Split(r.Notes, -1) {
		if note != "" {
			s.Notes = append(s.Notes, note)
		}
	}
	return s
}

// releaseDate renders "2009-02-10" as "10/2/2009" and returns the year. A
// bare year is kept as is; other values pass through with year 0.
func releaseDate(released string) (string, int) {
	if t, err := time.Parse(time.DateOnly, released); err == nil {
		return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()), t.Year()
	}
	if t, err := time.Parse("2006", released); err == nil {
		return strconv.Itoa(t.Year()), t.Year()
	}
	return released, 0
}

// Path returns the sheet location for an album directory:
// <dir>/<last element of dir>.yml.
func Path(dir string) string {
	dir = filepath.Clean(dir)
	return filepath.Join(dir, filepath.Base(dir)+".yml")
}

// Read loads the sheet of an album directory.
func Read(dir string) (*Sheet, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoSheet)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a sheet document.
func Parse(data []byte) (*Sheet, error) {
	var s Sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse album sheet: %w", err)
	}
	return &s, nil
}

// Marshal encodes a sheet with an explicit document start.
func (s *Sheet) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores the sheet in an album directory and returns its path.
func Write(ctx context.Context, dir string, s *Sheet) (string, error) {
	data, err := s.Marshal()
	if err != nil {
		return "", err
	}
	path := Path(dir)
	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		return "", err
	}
	return path, nil
}
