// Package model defines the core data structures used throughout
// musicbase.
//
// # Album and Song
//
// Album and Song mirror the rows kept in the collection database. Their
// identity fields never change; every other field is compared with Diff and
// copied with Apply, so the collector only writes what changed:
//
//	changed := stored.Diff(fresh)
//	stored.Apply(fresh, changed)
//
// # Release
//
// Release is an album record from the online catalog (artists, labels,
// tracklist, credits, formats, notes). Helper methods answer the questions
// the reconciler asks about it:
//
//	release.HasCredits()      // extra artists listed
//	release.IsAnalogueOnly()  // only vinyl formats
//	release.AudioTrackCount() // playable tracklist rows
//
// # FileTags
//
// FileTags is the format independent view of the tags read from one audio
// file. Names are case-insensitive and aliases are folded ("tracknumber" is
// "track", "date" is "year"):
//
//	tags := model.NewFileTags("Yes_-_[1972]_Close_to_the_Edge", "01_Close_to_the_Edge.flac")
//	tags.Add("TRACKNUMBER", "1")
//	tags.Track() // "1"
package model
