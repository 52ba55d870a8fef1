// Package textnorm turns free text into comparable word tokens.
//
// Every fuzzy comparison in musicbase works on token sets rather than raw
// strings: a directory name, a catalog title or a search query is split on
// runs of non-word characters, lower-cased, and collapsed into a set.
//
// # Tokenizing
//
//	set := textnorm.Tokenize("Yes, The Band")
//	set.Sorted() // []string{"band", "the", "yes"}
//
//	textnorm.Tokenize("Yes yes YES!").Len() // 1
//
// # Stripping punctuation
//
// StripNonAlphanumeric removes a fixed punctuation and whitespace class,
// optionally dropping a leading track number afterwards:
//
//	textnorm.StripNonAlphanumeric("03 - Heart of the Sunrise", "03")
//	// "HeartoftheSunrise"
package textnorm
