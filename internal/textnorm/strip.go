package textnorm

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[?!'+\-:;,._()\[\]~@&%<>= ]+`)

// StripNonAlphanumeric removes punctuation and spaces from text. When prefix
// is not empty and the stripped text starts with it, the prefix is removed
// once as well.
//
// It is used to compare a file name stem with a catalog track title after
// dropping the leading track number:
//
//	StripNonAlphanumeric("01_Close_to_the_Edge", "01") // "ClosetotheEdge"
//	StripNonAlphanumeric("Close to the Edge", "")      // "ClosetotheEdge"
func StripNonAlphanumeric(text, prefix string) string {
	out := nonAlphanumeric.ReplaceAllString(text, "")
	if prefix != "" {
		out = strings.TrimPrefix(out, prefix)
	}
	return out
}
