package match

import "github.com/handiism/musicbase/internal/textnorm"

// Candidate is one side of a comparison.
type Candidate struct {
	Artist string
	Title  string
	// Query is optional free text the remote record must share a word with.
	Query string
	// ReleaseID pins an exact release; a local candidate carrying one
	// matches anything.
	ReleaseID string
}

var articles = []string{"a", "an", "the"}

// Matches reports whether remote plausibly describes local.
func Matches(local, remote Candidate) bool {
	if local.ReleaseID != "" {
		return true
	}
	if !overlap(local.Artist, remote.Artist) || !overlap(local.Title, remote.Title) {
		return false
	}
	if local.Query == "" {
		return true
	}
	return textnorm.Tokenize(local.Query).Intersects(textnorm.Tokenize(remote.Artist + " " + remote.Title))
}

// overlap reports whether the smaller token set shares a word with the larger.
func overlap(a, b string) bool {
	left, right := textnorm.Tokenize(a), textnorm.Tokenize(b)
	if left.Len() > right.Len() {
		left, right = right, left
	}
	return left.Intersects(right)
}

// ContainsPhrase reports whether every word of needle, articles aside,
// occurs in haystack. A needle with no words left never matches.
func ContainsPhrase(haystack, needle string) bool {
	words := textnorm.Tokenize(needle).Without(articles...)
	if words.Len() == 0 {
		return false
	}
	return words.SubsetOf(textnorm.Tokenize(haystack))
}
