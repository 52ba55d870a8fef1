package textnorm

import (
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nonWord matches the separators between tokens. Letters and digits of any
// script count as word characters, as does the underscore.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// TokenSet is a set of lower-cased, non-empty word tokens.
//
// The zero value is an empty set and is ready to use for reads.
type TokenSet map[string]struct{}

// Tokenize splits text on every run of non-word characters, lower-cases each
// piece and collects the non-empty pieces into a set.
//
// Tokenize never fails; an empty or all-punctuation input yields an empty set.
func Tokenize(text string) TokenSet {
	set := make(TokenSet)
	if text == "" {
		return set
	}

	// Casers keep state and must not be shared between goroutines.
	lower := cases.Lower(language.Und)
	for _, piece := range nonWord.Split(text, -1) {
		if piece == "" {
			continue
		}
		set[lower.String(piece)] = struct{}{}
	}
	return set
}

// Len returns the number of tokens in the set.
func (s TokenSet) Len() int {
	return len(s)
}

// Has reports whether token is in the set.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Intersects reports whether the two sets share at least one token.
func (s TokenSet) Intersects(other TokenSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for token := range small {
		if large.Has(token) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every token of s is also in other.
// The empty set is a subset of every set.
func (s TokenSet) SubsetOf(other TokenSet) bool {
	for token := range s {
		if !other.Has(token) {
			return false
		}
	}
	return true
}

// Without returns a copy of s with the given words removed.
func (s TokenSet) Without(words ...string) TokenSet {
	out := make(TokenSet, len(s))
	for token := range s {
		out[token] = struct{}{}
	}
	for _, w := range words {
		delete(out, w)
	}
	return out
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for token := range s {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
