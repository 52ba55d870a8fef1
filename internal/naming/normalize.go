package naming

import (
	"regexp"
	"strings"
)

var (
	ripperTag    = regexp.MustCompile(`[ _\-\[(]+(?:EAC|FLAC|flac|MP3|mp3|\d{3}kbps)(?:[ _\-]*(?:EAC|FLAC|flac|MP3|mp3|\d{3}kbps))*[ _\])]*$`)
	attachedYear = regexp.MustCompile(`([A-Za-z\d])_[\[(]*(\d{4})[\])]`)
	discMarker   = regexp.MustCompile(`[ _\-(\[]*(?:CD|Disc|disc|DISC|Disk|disk)[#_ \-]*(\d{1,2})(?:[ _]*of[ _]*\d{1,2})?[)\]]*$`)
	spacedHyphen = regexp.MustCompile(`([A-Za-z])(?: +- *| *- +)([A-Za-z])`)
	bareHyphen   = regexp.MustCompile(`([A-Za-z])-([A-Za-z])`)
	blankOrComma = regexp.MustCompile(`[ ,]`)
	paddedHyphen = regexp.MustCompile(`_+-_+`)
)

// Normalize rewrites punctuation into the underscore form. It strips ripper
// tags, turns disc markers into __CDn, turns the artist hyphen into the
// separator and detaches years glued to the preceding word. It does not move
// the year.
func Normalize(name string, c Corrections) string {
	name = strings.TrimRight(name, " _-")
	name = stripRipperTags(name)
	name = attachedYear.ReplaceAllString(name, "${1}__${2}")
	name = normalizeDisc(name)
	name = separateArtist(name)
	name = blankOrComma.ReplaceAllString(name, "_")
	name = paddedHyphen.ReplaceAllString(name, Separator)
	name = attachedYear.ReplaceAllString(name, "${1}__${2}")
	name = strings.TrimRight(name, "_-")

	name = ApplyCorrections(name, c)
	return hoistComposers(name, c.Composers)
}

func stripRipperTags(name string) string {
	for {
		next := strings.TrimRight(ripperTag.ReplaceAllString(name, ""), " _-")
		if next == name {
			return name
		}
		name = next
	}
}

func normalizeDisc(name string) string {
	m := discMarker.FindStringSubmatchIndex(name)
	if m == nil {
		return name
	}
	start := m[0]
	// CD glued to a word, as in ABCD1, is not a disc marker.
	if start > 0 && isAlnum(name[start-1]) && !strings.ContainsRune(" _-([", rune(name[start])) {
		return name
	}
	return name[:start] + "__CD" + name[m[2]:m[3]]
}

// separateArtist turns the hyphen between artist and title into the
// separator. When the name already has a spaced hyphen or a separator only
// spaced hyphens qualify, so hyphenated words such as Jean-Luc survive.
func separateArtist(name string) string {
	re := bareHyphen
	if spacedHyphen.MatchString(name) || strings.Contains(name, Separator) {
		re = spacedHyphen
	}
	for {
		next := re.ReplaceAllString(name, "${1}"+Separator+"${2}")
		if next == name {
			return name
		}
		name = next
	}
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
