package naming

import (
	"regexp"
	"strings"
)

var (
	discToken   = regexp.MustCompile(`CD\d{1,2}`)
	discFirst   = regexp.MustCompile(`(CD\d{1,2})_(\[\d{4}\])`)
	underscores = regexp.MustCompile(`_{2,}`)
)

// Sequence moves year and disc marker so they directly follow the artist:
// Artist_-_[Year]_CDn_Title. Without a year the name is returned unchanged,
// and so is a name whose artist segment would be empty.
func Sequence(name, year string) string {
	if year == "" {
		return name
	}
	disc := findDisc(name)
	artist, title, bySeparator := splitArtistTitle(name, year)

	yearToken := yearMatcher(year)
	title = removeToken(title, yearToken, isDigit)
	if !bySeparator {
		artist = removeToken(artist, yearToken, isDigit)
	}
	if disc != "" {
		discMatch := literalMatcher(disc)
		artist = removeToken(artist, discMatch, isAlnum)
		title = removeToken(title, discMatch, isAlnum)
	}
	artist, title = tidy(artist), tidy(title)
	if artist == "" {
		return name
	}

	var b strings.Builder
	b.WriteString(artist)
	b.WriteString(Separator)
	b.WriteString("[" + year + "]")
	if disc != "" {
		b.WriteString("_" + disc)
	}
	if title != "" {
		b.WriteString("_" + title)
	}
	return b.String()
}

// Transpose swaps a disc marker that precedes the year: CD1_[2011] becomes
// [2011]_CD1.
func Transpose(name string) string {
	return discFirst.ReplaceAllString(name, "${2}_${1}")
}

// splitArtistTitle splits at the separator, else at the first double
// underscore, else around the year. The flag reports a separator split.
func splitArtistTitle(name, year string) (artist, title string, bySeparator bool) {
	if i := strings.Index(name, Separator); i >= 0 {
		return name[:i], name[i+len(Separator):], true
	}
	if i := strings.Index(name, "__"); i >= 0 {
		return name[:i], name[i+2:], false
	}
	if i := strings.Index(name, year); i >= 0 {
		return name[:i], name[i+len(year):], false
	}
	return name, "", false
}

// findDisc returns the first CDn marker standing on its own. A marker glued
// to a letter or digit on either side, as in ABCD1 or CD1CD2, is part of a
// word.
func findDisc(name string) string {
	for _, loc := range discToken.FindAllStringIndex(name, -1) {
		if !bounded(name, loc, isAlnum) || loc[1] < len(name) && isAlnum(name[loc[1]]) {
			continue
		}
		return name[loc[0]:loc[1]]
	}
	return ""
}

// matcher reports the end of a token starting at s[i], or -1.
type matcher func(s string, i int) int

// yearMatcher matches year with an optional opening and closing bracket.
func yearMatcher(year string) matcher {
	return func(s string, i int) int {
		j := i
		if s[j] == '[' || s[j] == '(' {
			j++
		}
		if !strings.HasPrefix(s[j:], year) {
			return -1
		}
		j += len(year)
		if j < len(s) && (s[j] == ']' || s[j] == ')') {
			j++
		}
		return j
	}
}

func literalMatcher(tok string) matcher {
	return func(s string, i int) int {
		if !strings.HasPrefix(s[i:], tok) {
			return -1
		}
		return i + len(tok)
	}
}

// removeToken replaces every token found by match with an underscore,
// skipping tokens glued to a neighbour that satisfies glued. Tokens do not
// overlap.
func removeToken(s string, match matcher, glued func(byte) bool) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); {
		end := match(s, i)
		if end < 0 {
			i++
			continue
		}
		if bounded(s, []int{i, end}, glued) {
			b.WriteString(s[last:i])
			b.WriteString("_")
			last = end
		}
		i = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// bounded reports whether the match at loc starts after a character that is
// not glued and ends before a non-digit.
func bounded(s string, loc []int, glued func(byte) bool) bool {
	if loc[0] > 0 && glued(s[loc[0]-1]) {
		return false
	}
	return loc[1] >= len(s) || !isDigit(s[loc[1]])
}

func tidy(s string) string {
	return strings.Trim(underscores.ReplaceAllString(s, "_"), "_-")
}
