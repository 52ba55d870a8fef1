package naming

import "strings"

// Separator divides the artist from the rest of a canonical name.
const Separator = "_-_"

// ArtistSplit marks a name prefix whose artist would otherwise not be split
// from the title, usually because the surname is not followed by a hyphen.
type ArtistSplit struct {
	// Match is the prefix a directory name must start with.
	Match string
	// Artist is the leading part of Match that names the artist.
	Artist string
}

// Composer describes a classical composer whose given-name initials belong
// in the artist segment, as in Beethoven_L_v_-_...
type Composer struct {
	Surname  string
	Initials string
	// Hoist moves the composer to the front when the surname appears later
	// in the name.
	Hoist bool
}

// Corrections is the static table of one-off fixes. Treat it as read-only.
type Corrections struct {
	ArtistSplits []ArtistSplit
	Composers    []Composer
}

// DefaultCorrections returns the built-in correction table.
func DefaultCorrections() Corrections {
	return Corrections{
		ArtistSplits: []ArtistSplit{
			{Match: "Hiromi_", Artist: "Hiromi"},
			{Match: "Illinois_Jacquet_", Artist: "Illinois_Jacquet"},
			{Match: "KlausSchulze_", Artist: "KlausSchulze"},
			{Match: "Kalyi_Jag_", Artist: "Kalyi_Jag"},
			{Match: "Yes_", Artist: "Yes"},
			{Match: "Yusef_Lateef_", Artist: "Yusef_Lateef"},
			{Match: "Souad_Massi__", Artist: "Souad_Massi"},
			{Match: "L_Shankar_others", Artist: "L_Shankar"},
		},
		Composers: []Composer{
			{Surname: "Beethoven", Initials: "L_v", Hoist: true},
			{Surname: "Mozart", Initials: "WA"},
		},
	}
}

// ApplyCorrections inserts the separator after a known artist prefix and adds
// missing composer initials. Names that already carry the separator are not
// split again.
func ApplyCorrections(name string, c Corrections) string {
	name = splitArtist(name, c.ArtistSplits)
	return addInitials(name, c.Composers)
}

func splitArtist(name string, splits []ArtistSplit) string {
	if strings.Contains(name, Separator) {
		return name
	}
	for _, s := range splits {
		if !strings.HasPrefix(name, s.Match) {
			continue
		}
		rest := strings.TrimLeft(strings.TrimPrefix(name, s.Artist), "_")
		return s.Artist + Separator + rest
	}
	return name
}

func addInitials(name string, composers []Composer) string {
	for _, cmp := range composers {
		plain := cmp.Surname + Separator
		if !strings.HasPrefix(name, plain) || strings.Contains(name, "_"+cmp.Initials+Separator) {
			continue
		}
		name = cmp.Surname + "_" + cmp.Initials + Separator + strings.TrimPrefix(name, plain)
	}
	return name
}

// hoistComposers moves a hoisted composer found mid-name to the artist
// position: Karajan_-_Beethoven_Symphonies becomes
// Beethoven_L_v_-_Karajan_Symphonies.
func hoistComposers(name string, composers []Composer) string {
	for _, cmp := range composers {
		if !cmp.Hoist || !strings.Contains(name, cmp.Surname) || strings.HasPrefix(name, cmp.Surname) {
			continue
		}
		rest := strings.Trim(cutComposer(name, cmp), "_-")
		name = cmp.Surname + "_" + cmp.Initials + Separator + rest
	}
	return name
}

// cutComposer drops every mention of the composer along with its initials
// and the underscores or hyphens leading into it.
func cutComposer(name string, cmp Composer) string {
	var b strings.Builder
	for {
		k := strings.Index(name, cmp.Surname)
		if k < 0 {
			break
		}
		b.WriteString(strings.TrimRight(name[:k], "_-"))
		name = strings.TrimPrefix(name[k+len(cmp.Surname):], "_"+cmp.Initials)
	}
	b.WriteString(name)
	return b.String()
}
