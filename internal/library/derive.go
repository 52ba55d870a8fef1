package library

import (
	"regexp"
	"strings"

	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/sheet"
)

// defaultYear dates albums and songs whose year is unknown.
const defaultYear = 1900

const various = "Various"

var (
	artistSegment  = regexp.MustCompile(`_-_|[0-9]{4}`)
	durationJunk   = regexp.MustCompile(`X{3,}DURATION[0-9:.]+`)
	composerCredit = regexp.MustCompile(`(?i)composer|composed by`)
)

// AlbumTitle is the album tag of the first file, or the directory name for
// compilations and untagged files.
func AlbumTitle(tags []model.FileTags) string {
	if len(tags) == 0 {
		return ""
	}
	first := tags[0]
	if strings.Contains(first.Directory, various) || first.Album() == "" {
		return first.Directory
	}
	return first.Album()
}

// AlbumLabel is the first label tag, else the sheet's label. Compilations
// have no label.
func AlbumLabel(tags []model.FileTags, sh *sheet.Sheet) string {
	for _, t := range tags {
		if strings.Contains(t.Directory, various) {
			return ""
		}
		if l := t.Label(); l != "" {
			return l
		}
	}
	if sh == nil {
		return ""
	}
	return sh.Label
}

// AlbumYear prefers a sheet year after 1900. Otherwise the first year tag
// is used; compilations and unreadable years fall back to the sheet year or
// 1900.
func AlbumYear(tags []model.FileTags, sh *sheet.Sheet) int {
	year := defaultYear
	if sh != nil && sh.Year > 0 {
		year = sh.Year
	}
	if len(tags) == 0 || year > defaultYear || (sh != nil && strings.Contains(sh.Artist, various)) {
		return year
	}
	for _, t := range tags {
		if strings.Contains(t.Directory, various) {
			return year
		}
		if t.Year() == "" {
			continue
		}
		if y, ok := t.YearNumber(); ok {
			return y
		}
		return year
	}
	return year
}

// AlbumArtist is the first artist, album artist or composer tag. The sheet
// artist is used for compilations and when no file has one.
func AlbumArtist(tags []model.FileTags, sh *sheet.Sheet) string {
	var fallback string
	if sh != nil {
		fallback = sh.Artist
	}
	if len(tags) == 0 || fallback == various {
		return fallback
	}
	for _, t := range tags {
		if strings.Contains(artistSegment.Split(t.Directory, 2)[0], various) {
			return fallback
		}
		if a := firstOf(t.Artist(), t.AlbumArtist(), t.Composer()); a != "" {
			return a
		}
	}
	return fallback
}

// AlbumComposer is the sheet composer, else the first composer, album
// artist or artist tag.
func AlbumComposer(tags []model.FileTags, sh *sheet.Sheet) string {
	var fallback string
	if sh != nil {
		fallback = sh.Composer
	}
	if len(tags) == 0 || fallback == various {
		return fallback
	}
	for _, t := range tags {
		if strings.Contains(t.Directory, various) {
			return fallback
		}
		if c := firstOf(t.Composer(), fallback, t.AlbumArtist(), t.Artist()); c != "" {
			return c
		}
	}
	return fallback
}

// AlbumComment combines the sheet's description, credits and notes. The
// composer is credited unless a credit already names one. Without a sheet
// the comment tag of the first file is used.
func AlbumComment(tags []model.FileTags, sh *sheet.Sheet) string {
	if len(tags) == 0 {
		return ""
	}
	if sh == nil {
		return model.FixComment(tags[0].Comment())
	}

	credits := append([]string(nil), sh.Credits...)
	if composer := AlbumComposer(tags, sh); composer != "" && !hasComposerCredit(credits) {
		credits = append(credits, "Composed by - "+composer)
	}

	parts := []string{sh.Description, bulletList(credits), bulletList(sh.Notes)}
	return joinNonEmpty(parts, "\n")
}

// SongComment is the file's comment without duration junk, followed by the
// credits of its sheet track.
func SongComment(tags model.FileTags, track *sheet.Track) string {
	comment := model.FixComment(strings.TrimSpace(durationJunk.ReplaceAllString(tags.Comment(), "")))
	if track == nil {
		return comment
	}
	return joinNonEmpty([]string{comment, strings.TrimPrefix(bulletList(track.Credits), "\n")}, "\n")
}

// SongYear is the file's year, else the sheet's, else 1900.
func SongYear(tags model.FileTags, sh *sheet.Sheet) int {
	if y, ok := tags.YearNumber(); ok {
		return y
	}
	if sh != nil && sh.Year > 0 {
		return sh.Year
	}
	return defaultYear
}

func hasComposerCredit(credits []string) bool {
	for _, c := range credits {
		if composerCredit.MatchString(c) {
			return true
		}
	}
	return false
}

// bulletList renders items as "\n - item" lines.
func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			b.WriteString("\n - ")
			b.WriteString(it)
		}
	}
	return b.String()
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
