package model

import (
	"strings"
)

// Release is an album record fetched from the online catalog.
//
// It keeps only what the album sheet and the reconciler need. Multi-valued
// fields keep the catalog's order.
type Release struct {
	ID        int
	MasterID  int
	Title     string
	Artists   []string
	Labels    []Label
	Series    []Label
	Released  string
	Year      int
	Country   string
	Genres    []string
	Styles    []string
	Tracklist []ReleaseTrack
	Credits   []Credit
	Formats   []Format
	Notes     string
	Images    []Image
	URI       string
}

// ReleaseTrack is one row of a release tracklist.
type ReleaseTrack struct {
	// Position is the catalog position: "1", "01", "A1", "2-3" ...
	Position string
	Title    string
	Duration string
	// Type is "track" for audio rows. Headings and index rows carry other values.
	Type    string
	Credits []Credit
}

// IsAudio reports whether the row is a playable track.
func (t ReleaseTrack) IsAudio() bool {
	return t.Type == "" || t.Type == "track"
}

// Credit is a contributor with its role, optionally restricted to some tracks.
type Credit struct {
	Name   string
	Role   string
	Tracks string
}

// String renders the credit as "Role - Name", adding the track restriction
// in parentheses when present. Words of the role are joined with hyphens
// so the separator stays unambiguous.
func (c Credit) String() string {
	s := strings.Join(strings.Fields(c.Role), "-") + " - " + c.Name
	if c.Tracks != "" {
		s += " (tracks " + c.Tracks + ")"
	}
	return s
}

// Label is a label or series entry with its catalog number.
type Label struct {
	Name  string
	CatNo string
}

// String joins name and catalog number with a space.
func (l Label) String() string {
	return strings.TrimSpace(l.Name + " " + l.CatNo)
}

// Format is a physical or digital carrier of a release.
type Format struct {
	Name         string
	Quantity     string
	Descriptions []string
}

// Image is a picture attached to a release.
type Image struct {
	URI    string
	Type   string
	Width  int
	Height int
}

// ArtistName joins the release artists with ", ".
func (r *Release) ArtistName() string {
	return strings.Join(r.Artists, ", ")
}

// LabelName joins "name catno" of every label with ", ".
func (r *Release) LabelName() string {
	return joinLabels(r.Labels)
}

// SeriesName joins "name catno" of every series with ", ".
func (r *Release) SeriesName() string {
	return joinLabels(r.Series)
}

func joinLabels(labels []Label) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if s := l.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// HasCredits reports whether the release lists any extra artists.
func (r *Release) HasCredits() bool {
	return len(r.Credits) > 0
}

// IsAnalogueOnly reports whether no format other than vinyl is listed.
// A release without formats counts as analogue only.
func (r *Release) IsAnalogueOnly() bool {
	for _, f := range r.Formats {
		if f.Name != "" && f.Name != "Vinyl" {
			return false
		}
	}
	return true
}

// AudioTrackCount returns the number of playable tracklist rows.
func (r *Release) AudioTrackCount() int {
	n := 0
	for _, t := range r.Tracklist {
		if t.IsAudio() {
			n++
		}
	}
	return n
}

// PrimaryImage returns the image typed "primary", or the first image.
func (r *Release) PrimaryImage() (Image, bool) {
	for _, img := range r.Images {
		if img.Type == "primary" {
			return img, true
		}
	}
	if len(r.Images) > 0 {
		return r.Images[0], true
	}
	return Image{}, false
}
