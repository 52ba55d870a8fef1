// Package tagging writes the data of an album sheet into the tags of the
// album's audio files, and applies bulk tag corrections.
//
// Files are matched to sheet tracks by title. When every file name starts
// with a track number, the number is dropped before matching; otherwise the
// files can be renamed to NN_<name> once tagged.
package tagging
