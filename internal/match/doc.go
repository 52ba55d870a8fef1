// Package match decides whether a locally known album and a catalog record
// describe the same release, using word overlap rather than exact equality.
//
// Either side may abbreviate: "Yes" matches "Yes, The Band" because the
// smaller token set overlaps the larger one. Both the artist and the title
// must overlap. A pinned release ID skips the comparison entirely.
//
//	local := match.Candidate{Artist: "Yes", Title: "Close to the Edge"}
//	remote := match.Candidate{Artist: "Yes, The Band", Title: "Close to the Edge (Remaster)"}
//	match.Matches(local, remote) // true
//
// ContainsPhrase is the stricter check used to align track titles.
package match
