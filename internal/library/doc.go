// Package library builds the album and song records of a music collection.
//
// The Collector walks the collection, reads the tags of every audio file and
// the album sheet next to them, and stores the result. Album and song fields
// are derived with a fixed precedence: file tags first, then the sheet, then
// defaults (1900 for unknown years). Compilations, whose directory names
// contain "Various", never take their artist, label or year from file tags.
//
// The Searcher looks for a substring or regular expression in the tag values
// of every file.
package library
