package discogs

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingID  = regexp.MustCompile(`^(\d+)`)
	lastWord   = regexp.MustCompile(`-[a-z0-9]+$`)
	titleNoise = regexp.MustCompile(`[+?!.,:;_\[\](){}']`)
)

// ParseReleaseURL splits a release page URL such as
// "https://www.discogs.com/release/15639198-Art-Blakey-The-Jazz-Messengers-Just-Coolin"
// (or just its last path element) into the numeric id and the slug that
// follows it. An id of 0 means none was found.
func ParseReleaseURL(rawURL string) (int, string) {
	rest := rawURL
	if i := strings.LastIndex(rest, "release/"); i >= 0 {
		rest = rest[i+len("release/"):]
	}
	rest = strings.Trim(rest, "/")

	m := leadingID.FindString(rest)
	if m == "" {
		return 0, rest
	}
	id, err := strconv.Atoi(m)
	if err != nil {
		return 0, rest
	}
	slug := strings.TrimPrefix(rest[len(m):], "-")
	return id, slug
}

// TitleSlug turns a title into the hyphenated form used in release slugs.
func TitleSlug(title string) string {
	return strings.Join(strings.Fields(titleNoise.ReplaceAllString(title, " ")), "-")
}

// ArtistFromSlug returns the part of slug before the title. When the full
// title is not found, trailing words are dropped from it one at a time.
// The result keeps the slug's hyphens; "" means the artist could not be
// located.
func ArtistFromSlug(slug, title string) string {
	lower := strings.ToLower(slug)
	t := strings.ToLower(TitleSlug(title))
	for t != "" {
		if i := strings.Index(lower, t); i >= 0 {
			return strings.Trim(slug[:i], "-")
		}
		next := lastWord.ReplaceAllString(t, "")
		if next == t {
			break
		}
		t = next
	}
	return ""
}
