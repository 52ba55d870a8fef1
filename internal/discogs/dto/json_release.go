package dto

import (
	"regexp"
	"strings"

	"github.com/handiism/musicbase/internal/model"
)

// duplicateSuffix is the " (2)" the catalog appends to homonymous artists.
var duplicateSuffix = regexp.MustCompile(`\s+\(\d+\)$`)

// JSONRelease is a release or master document of the catalog API.
type JSONRelease struct {
	ID           int          `json:"id"`
	MasterID     int          `json:"master_id"`
	MainRelease  int          `json:"main_release"`
	Title        string       `json:"title"`
	Artists      []JSONArtist `json:"artists"`
	ExtraArtists []JSONArtist `json:"extraartists"`
	Labels       []JSONLabel  `json:"labels"`
	Series       []JSONLabel  `json:"series"`
	Released     string       `json:"released"`
	Year         int          `json:"year"`
	Country      string       `json:"country"`
	Genres       []string     `json:"genres"`
	Styles       []string     `json:"styles"`
	Tracklist    []JSONTrack  `json:"tracklist"`
	Formats      []JSONFormat `json:"formats"`
	Notes        string       `json:"notes"`
	Images       []JSONImage  `json:"images"`
	URI          string       `json:"uri"`
	Message      string       `json:"message"`
}

// JSONArtist is an artist or credit entry.
type JSONArtist struct {
	Name   string `json:"name"`
	ANV    string `json:"anv"`
	Role   string `json:"role"`
	Tracks string `json:"tracks"`
}

// JSONLabel is a label or series entry.
type JSONLabel struct {
	Name  string `json:"name"`
	CatNo string `json:"catno"`
}

// JSONTrack is one tracklist row.
type JSONTrack struct {
	Position     string       `json:"position"`
	Title        string       `json:"title"`
	Duration     string       `json:"duration"`
	Type         string       `json:"type_"`
	ExtraArtists []JSONArtist `json:"extraartists"`
}

// JSONFormat is a carrier entry.
type JSONFormat struct {
	Name         string   `json:"name"`
	Qty          string   `json:"qty"`
	Descriptions []string `json:"descriptions"`
}

// JSONImage is an image entry.
type JSONImage struct {
	URI    string `json:"uri"`
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// artistName drops the homonym suffix.
func (a JSONArtist) artistName() string {
	return strings.TrimSpace(duplicateSuffix.ReplaceAllString(a.Name, ""))
}

func toCredits(artists []JSONArtist) []model.Credit {
	var credits []model.Credit
	for _, a := range artists {
		credits = append(credits, model.Credit{
			Name:   a.artistName(),
			Role:   a.Role,
			Tracks: a.Tracks,
		})
	}
	return credits
}

func toLabels(labels []JSONLabel) []model.Label {
	var out []model.Label
	for _, l := range labels {
		out = append(out, model.Label{Name: strings.TrimSpace(l.Name), CatNo: strings.TrimSpace(l.CatNo)})
	}
	return out
}

// ToRelease converts JSONRelease to a model.Release.
func (jr *JSONRelease) ToRelease() *model.Release {
	r := &model.Release{
		ID:       jr.ID,
		MasterID: jr.MasterID,
		Title:    strings.TrimSpace(jr.Title),
		Labels:   toLabels(jr.Labels),
		Series:   toLabels(jr.Series),
		Released: jr.Released,
		Year:     jr.Year,
		Country:  jr.Country,
		Genres:   jr.Genres,
		Styles:   jr.Styles,
		Credits:  toCredits(jr.ExtraArtists),
		Notes:    jr.Notes,
		URI:      jr.URI,
	}

	for _, a := range jr.Artists {
		r.Artists = append(r.Artists, a.artistName())
	}

	for _, t := range jr.Tracklist {
		r.Tracklist = append(r.Tracklist, model.ReleaseTrack{
			Position: strings.TrimSpace(t.Position),
			Title:    strings.TrimSpace(t.Title),
			Duration: t.Duration,
			Type:     t.Type,
			Credits:  toCredits(t.ExtraArtists),
		})
	}

	for _, f := range jr.Formats {
		r.Formats = append(r.Formats, model.Format{Name: f.Name, Quantity: f.Qty, Descriptions: f.Descriptions})
	}

	for _, img := range jr.Images {
		r.Images = append(r.Images, model.Image{URI: img.URI, Type: img.Type, Width: img.Width, Height: img.Height})
	}

	return r
}
