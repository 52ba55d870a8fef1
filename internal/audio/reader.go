package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
	"github.com/handiism/musicbase/internal/model"
)

// id3Names maps ID3v2 text frames to tag names. TDRC precedes TYER so
// version 2.4 dates win.
var id3Names = []struct{ frame, name string }{
	{"TIT2", "title"},
	{"TPE1", "artist"},
	{"TPE2", "albumartist"},
	{"TPE3", "conductor"},
	{"TALB", "album"},
	{"TCOM", "composer"},
	{"TCON", "genre"},
	{"TRCK", "track"},
	{"TPOS", "discnumber"},
	{"TDRC", "year"},
	{"TYER", "year"},
	{"TPUB", "label"},
}

// Reader reads tags from audio files.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the tags of the file at path. Directory is set to the
// file's directory; callers working relative to a collection base replace it.
func (r *Reader) Read(path string) (model.FileTags, error) {
	tags := model.NewFileTags(filepath.Dir(path), filepath.Base(path))

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		err = readID3(path, &tags)
	case ".flac":
		err = readVorbis(path, &tags)
	default:
		return tags, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	if err != nil {
		return tags, fmt.Errorf("read tags of %s: %w", filepath.Base(path), err)
	}
	return tags, nil
}

// Year returns the year tag of the first audio file in dir that has one.
func (r *Reader) Year(dir string) (string, bool) {
	names, err := ListFiles(dir)
	if err != nil {
		return "", false
	}
	for _, name := range names {
		if !IsTaggable(name) {
			continue
		}
		tags, err := r.Read(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if y := tags.Year(); y != "" {
			return y, true
		}
	}
	return "", false
}

func readID3(path string, tags *model.FileTags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	for _, m := range id3Names {
		if tf := tag.GetTextFrame(m.frame); tf.Text != "" {
			tags.Add(m.name, tf.Text)
		}
	}

	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if cf, ok := f.(id3v2.CommentFrame); ok {
			tags.Add("comment", cf.Text)
		}
	}
	for _, f := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		if uf, ok := f.(id3v2.UserDefinedTextFrame); ok && uf.Description != "" {
			tags.Add(uf.Description, uf.Value)
		}
	}
	return nil
}

func readVorbis(path string, tags *model.FileTags) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	f, err := flac.ParseMetadata(fh)
	if err != nil {
		return err
	}

	for _, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return err
		}
		for _, c := range cmts.Comments {
			name, value, ok := strings.Cut(c, "=")
			if ok {
				tags.Add(name, value)
			}
		}
	}
	return nil
}
