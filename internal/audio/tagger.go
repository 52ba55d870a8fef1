package audio

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
)

// TagEditAction defines how to handle individual tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the album sheet.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// ParseTagEditAction maps "empty", "modify" and "keep" to a TagEditAction.
// Unknown values keep the existing tag.
func ParseTagEditAction(s string) TagEditAction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty":
		return TagEmpty
	case "modify":
		return TagModify
	default:
		return TagDoNotModify
	}
}

// TagConfig holds tagging configuration for each field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:    true,
//	    ClearUnwanted: true,
//	    Artist:        TagModify,      // Update artist from the sheet
//	    TrackNumber:   TagModify,      // Number files in sheet order
//	    Comments:      TagEmpty,       // Clear any existing comments
//	    Genre:         TagDoNotModify, // Keep the ripper's genre
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no string tags are modified.
	ModifyTags bool

	// ClearUnwanted removes frames and comments left by rippers and stores.
	ClearUnwanted bool

	Artist      TagEditAction
	AlbumArtist TagEditAction
	Album       TagEditAction
	Composer    TagEditAction
	Genre       TagEditAction
	Year        TagEditAction
	TrackNumber TagEditAction
	TrackTitle  TagEditAction
	Comments    TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// Every field is set to TagModify and unwanted frames are cleared.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:    true,
		ClearUnwanted: true,
		Artist:        TagModify,
		AlbumArtist:   TagModify,
		Album:         TagModify,
		Composer:      TagModify,
		Genre:         TagModify,
		Year:          TagModify,
		TrackNumber:   TagModify,
		TrackTitle:    TagModify,
		Comments:      TagModify,
	}
}

// TrackTags are the values written to one file.
type TrackTags struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Composer    string
	Genre       string
	Year        string
	Comment     string
	TrackNumber int
	TotalTracks int
}

// trackNumber renders "n/total", "n" or "" depending on what is known.
func (t TrackTags) trackNumber() string {
	switch {
	case t.TrackNumber <= 0:
		return ""
	case t.TotalTracks > 0:
		return fmt.Sprintf("%d/%d", t.TrackNumber, t.TotalTracks)
	default:
		return strconv.Itoa(t.TrackNumber)
	}
}

// unwantedID3Frames are removed from MP3 files when ClearUnwanted is set.
// TPE1 and TPE2 are rewritten afterwards when their action is TagModify.
var unwantedID3Frames = []string{
	"TLAN", "TKWD", "TMED", "TMOO", "TPE1", "TPE2", "TPE3", "TPE4", "TPUB",
	"TRSN", "TSRC", "TSSE", "UFID", "USER", "WCOM", "WCOP", "WOAS", "WOAE", "WFED",
}

// Tagger writes tags to MP3 and FLAC files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.Write(path, tags, artworkBytes)
//	if err != nil {
//	    log.Printf("Failed to tag %s: %v", path, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// Write stores tags in the file at path.
//
// This method:
//  1. Opens the existing file and parses its tags
//  2. Removes unwanted frames if configured
//  3. Updates string tags based on TagConfig settings
//  4. Embeds cover art if artwork bytes are provided (JPEG expected)
//  5. Saves the file
func (t *Tagger) Write(path string, tags TrackTags, artwork []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		err = t.writeID3(path, tags, artwork)
	case ".flac":
		err = t.writeVorbis(path, tags, artwork)
	default:
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("write tags of %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (t *Tagger) writeID3(path string, tags TrackTags, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	if t.config.ClearUnwanted {
		for _, id := range unwantedID3Frames {
			tag.DeleteFrames(id)
		}
	}

	if t.config.ModifyTags {
		t.updateID3Tags(tag, tags)
	}

	if artwork != nil {
		updateID3Artwork(tag, artwork)
	}

	return tag.Save()
}

// updateID3Tags updates text frames based on configuration.
func (t *Tagger) updateID3Tags(tag *id3v2.Tag, tags TrackTags) {
	setText := func(action TagEditAction, id, value string) {
		switch action {
		case TagEmpty:
			tag.DeleteFrames(id)
		case TagModify:
			tag.DeleteFrames(id)
			if value != "" {
				tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
			}
		}
	}

	setText(t.config.TrackTitle, "TIT2", tags.Title)
	setText(t.config.Artist, "TPE1", tags.Artist)
	setText(t.config.AlbumArtist, "TPE2", tags.AlbumArtist)
	setText(t.config.Album, "TALB", tags.Album)
	setText(t.config.Composer, "TCOM", tags.Composer)
	setText(t.config.Genre, "TCON", tags.Genre)
	setText(t.config.TrackNumber, "TRCK", tags.trackNumber())

	// TYER is ID3v2.3, TDRC its ID3v2.4 replacement.
	setText(t.config.Year, "TYER", tags.Year)
	setText(t.config.Year, "TDRC", tags.Year)

	commentID := tag.CommonID("Comments")
	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(commentID)
	case TagModify:
		tag.DeleteFrames(commentID)
		if tags.Comment != "" {
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding:    id3v2.EncodingUTF8,
				Language:    "eng",
				Description: "",
				Text:        tags.Comment,
			})
		}
	}
}

// updateID3Artwork embeds cover art as an attached picture frame.
func updateID3Artwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
