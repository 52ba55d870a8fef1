// Package naming rewrites free-typed album directory names into the canonical
// form used across the library:
//
//	Artist_-_[Year]_CDn_Title
//
// The rewrite is an ordered chain of small, pure stages. Each stage is exported
// so it can be tested on its own:
//
//  1. ApplyCorrections: known artist prefixes and composer initials
//  2. Normalize: brackets, disc markers, separators and ripper tags
//  3. ResolveYear: year from the name, else from the injected YearLookup
//  4. Sequence: year and disc moved directly after the artist
//  5. Transpose: a disc marker never precedes the year
//
// Canonicalize runs the chain until the name stops changing, which makes it
// idempotent:
//
//	lookup := func(string) (string, bool) { return "", false }
//	naming.Canonicalize("Glenn Miller - The Lost Recordings (Disc 1 of 2)", lookup)
//	// "Glenn_Miller_-_The_Lost_Recordings__CD1"
//
// Names are never rejected. Fragments that do not fit any rule pass through.
package naming
