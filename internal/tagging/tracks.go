package tagging

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/handiism/musicbase/internal/match"
	"github.com/handiism/musicbase/internal/sheet"
	"github.com/handiism/musicbase/internal/textnorm"
	"github.com/handiism/musicbase/internal/trackid"
)

// numberPrefix matches a track number at the start of a file name.
var numberPrefix = regexp.MustCompile(`^(\d{1,3})[_ ]`)

// sheetTrack is a tracklist entry with its sequential track number.
type sheetTrack struct {
	sheet.Track
	Number int
}

// numberTracks assigns track numbers to the positioned entries of a
// tracklist. When every position can be ranked, numeric positions keep their
// order by value and vinyl sides are counted in tracklist order. Otherwise
// all entries are counted in tracklist order.
func numberTracks(tracks []sheet.Track) []sheetTrack {
	var positioned []sheet.Track
	var ids []string
	for _, t := range tracks {
		if t.Position == "" {
			continue
		}
		positioned = append(positioned, t)
		ids = append(ids, t.Position)
	}

	ix, skipped := trackid.BuildIndexReport(ids)
	out := make([]sheetTrack, len(positioned))
	for i, t := range positioned {
		n := i + 1
		if rank, ok := ix.Rank(t.Position); ok && len(skipped) == 0 {
			n = rank + 1
		}
		out[i] = sheetTrack{Track: t, Number: n}
	}
	return out
}

// splitFileName returns the stem of a file name without its extension and,
// when numbered is set, without the leading track number, which is returned
// separately.
func splitFileName(name string, numbered bool) (stem, number string) {
	stem = strings.TrimSuffix(name, filepath.Ext(name))
	if !numbered {
		return stem, ""
	}
	if m := numberPrefix.FindStringSubmatch(stem); m != nil {
		return stem[len(m[0]):], m[1]
	}
	return stem, ""
}

// findTrack returns the tracklist entry whose title is the file stem once
// punctuation and spaces are dropped. Failing that, a single entry whose
// title words all occur in the stem is accepted.
func findTrack(tracks []sheetTrack, stem, number string) (sheetTrack, bool) {
	key := strings.ToLower(textnorm.StripNonAlphanumeric(stem, number))
	for _, t := range tracks {
		if strings.ToLower(textnorm.StripNonAlphanumeric(t.Title, "")) == key {
			return t, true
		}
	}

	words := strings.ReplaceAll(stem, "_", " ")
	var found []sheetTrack
	for _, t := range tracks {
		if match.ContainsPhrase(words, t.Title) {
			found = append(found, t)
		}
	}
	if len(found) == 1 {
		return found[0], true
	}
	return sheetTrack{}, false
}

// StartWithTrackNumbers reports whether every name starts with a track
// number and the numbers are 1..n in some order. Three digit numbers are
// read as a disc digit followed by the track.
func StartWithTrackNumbers(names []string) bool {
	if len(names) == 0 {
		return false
	}
	nums := make([]int, 0, len(names))
	for _, name := range names {
		m := numberPrefix.FindStringSubmatch(name)
		if m == nil {
			return false
		}
		digits := m[1]
		if len(m[1]) > 2 {
			digits = digits[1:]
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return false
		}
		nums = append(nums, n)
	}

	maximum, sum := 0, 0
	for _, n := range nums {
		sum += n
		maximum = max(maximum, n)
	}
	return sum == maximum*(maximum+1)/2
}
