package audio

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

const (
	fieldAlbumArtist = "ALBUMARTIST"
	fieldComposer    = "COMPOSER"
	fieldComment     = "COMMENT"
	fieldTotalTracks = "TOTALTRACKS"
)

// unwantedVorbisFields are removed from FLAC files when ClearUnwanted is set.
var unwantedVorbisFields = []string{
	"LANGUAGE", "ENCODER", "MINOR_VERSION", "MAJOR_BAND", "MAJOR_BRAND",
	"COMPATIBLE_BANDS", "COMPATIBLE_BRANDS", "REPLAYGAIN_TRACK_GAIN", "REPLAYGAIN_TRACK_PEAK",
	"ITUNES_CDDB_1", "PUBLISHER", "RECORDED-BY", "GRACENOTEFILEID", "GRACENOTEEXTDATA", "ENCODED-BY",
}

func (t *Tagger) writeVorbis(path string, tags TrackTags, artwork []byte) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return err
	}

	var cmts *flacvorbis.MetaDataBlockVorbisComment
	idx := -1
	for i, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return err
			}
			idx = i
			break
		}
	}
	if cmts == nil {
		cmts = flacvorbis.New()
	}

	set := map[string]string{}
	drop := map[string]bool{}
	if t.config.ClearUnwanted {
		for _, name := range unwantedVorbisFields {
			drop[name] = true
		}
	}
	if t.config.ModifyTags {
		field := func(action TagEditAction, name, value string) {
			switch action {
			case TagEmpty:
				drop[name] = true
			case TagModify:
				drop[name] = true
				if value != "" {
					set[name] = value
				}
			}
		}
		field(t.config.TrackTitle, flacvorbis.FIELD_TITLE, tags.Title)
		field(t.config.Artist, flacvorbis.FIELD_ARTIST, tags.Artist)
		field(t.config.AlbumArtist, fieldAlbumArtist, tags.AlbumArtist)
		field(t.config.Album, flacvorbis.FIELD_ALBUM, tags.Album)
		field(t.config.Composer, fieldComposer, tags.Composer)
		field(t.config.Genre, flacvorbis.FIELD_GENRE, tags.Genre)
		field(t.config.Year, flacvorbis.FIELD_DATE, tags.Year)
		field(t.config.Comments, fieldComment, tags.Comment)
		if tags.TrackNumber > 0 {
			field(t.config.TrackNumber, flacvorbis.FIELD_TRACKNUMBER, strconv.Itoa(tags.TrackNumber))
		} else {
			field(t.config.TrackNumber, flacvorbis.FIELD_TRACKNUMBER, "")
		}
		if tags.TotalTracks > 0 {
			field(t.config.TrackNumber, fieldTotalTracks, strconv.Itoa(tags.TotalTracks))
		}
	}

	kept := cmts.Comments[:0]
	for _, c := range cmts.Comments {
		name, _, _ := strings.Cut(c, "=")
		if !drop[strings.ToUpper(name)] {
			kept = append(kept, c)
		}
	}
	cmts.Comments = kept
	for _, name := range sortedKeys(set) {
		if err := cmts.Add(name, set[name]); err != nil {
			return err
		}
	}

	block := cmts.Marshal()
	if idx >= 0 {
		f.Meta[idx] = &block
	} else {
		f.Meta = append(f.Meta, &block)
	}

	if artwork != nil {
		if err := replaceVorbisArtwork(f, artwork); err != nil {
			return err
		}
	}

	return f.Save(path)
}

// replaceVorbisArtwork drops existing picture blocks and adds a front cover.
func replaceVorbisArtwork(f *flac.File, artwork []byte) error {
	meta := f.Meta[:0]
	for _, block := range f.Meta {
		if block.Type != flac.Picture {
			meta = append(meta, block)
		}
	}
	f.Meta = meta

	pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Front Cover", artwork, "image/jpeg")
	if err != nil {
		return err
	}
	block := pic.Marshal()
	f.Meta = append(f.Meta, &block)
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
