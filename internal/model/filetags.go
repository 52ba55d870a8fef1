package model

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FileTags holds the tags read from one audio file.
//
// Tag names are case-insensitive and a few format specific aliases are
// folded together ("tracknumber" is stored as "track", "date" as "year"),
// so MP3 and FLAC files answer the same accessors.
type FileTags struct {
	// Directory is the album directory relative to the collection base.
	Directory string

	// File is the file name without directory.
	File string

	values map[string][]string
}

// NewFileTags returns an empty tag record for file in directory.
func NewFileTags(directory, file string) FileTags {
	return FileTags{Directory: directory, File: file, values: map[string][]string{}}
}

var tagAliases = map[string]string{
	"tracknumber":  "track",
	"date":         "year",
	"organization": "label",
}

// TagName returns the canonical name of a tag.
func TagName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := tagAliases[name]; ok {
		return alias
	}
	return name
}

// Add appends a value to a tag. Empty values are ignored.
func (t *FileTags) Add(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if t.values == nil {
		t.values = map[string][]string{}
	}
	key := TagName(name)
	t.values[key] = append(t.values[key], value)
}

// Get returns the first value of a tag, or "".
func (t FileTags) Get(name string) string {
	if v := t.values[TagName(name)]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Values returns every value of a tag.
func (t FileTags) Values(name string) []string {
	return t.values[TagName(name)]
}

// Has reports whether the tag is set.
func (t FileTags) Has(name string) bool {
	return len(t.values[TagName(name)]) > 0
}

// Names returns the set tag names in sorted order.
func (t FileTags) Names() []string {
	names := make([]string, 0, len(t.values))
	for k := range t.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (t FileTags) Title() string { return t.Get("title") }
func (t FileTags) Album() string { return t.Get("album") }
func (t FileTags) Artist() string { return t.Get("artist") }
func (t FileTags) AlbumArtist() string { return t.Get("albumartist") }
func (t FileTags) Composer() string { return t.Get("composer") }
func (t FileTags) Genre() string { return t.Get("genre") }
func (t FileTags) Label() string { return t.Get("label") }
func (t FileTags) Comment() string { return t.Get("comment") }
func (t FileTags) Track() string { return t.Get("track") }
func (t FileTags) Year() string { return t.Get("year") }

var leadingInt = regexp.MustCompile(`^\d+`)

// YearNumber returns the leading integer of the year tag.
func (t FileTags) YearNumber() (int, bool) {
	m := leadingInt.FindString(t.Year())
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	return n, err == nil
}

var (
	foreignComment  = regexp.MustCompile(`X{1,3}[A-Z]+`)
	durationComment = regexp.MustCompile(`X{1,3}[A-Z]+DURATION`)
	durationPrefix  = regexp.MustCompile(`[A-Z]+.+:`)
)

// FixComment cleans a comment tag left behind by rippers and taggers.
//
// ID3v1 comments and bare frame identifiers are dropped; a "DURATION" frame
// keeps only its value.
func FixComment(comment string) string {
	switch {
	case comment == "":
		return ""
	case strings.Contains(comment, "engID3v1 Comment"):
		return ""
	case durationComment.MatchString(comment):
		return "DURATION " + durationPrefix.ReplaceAllString(comment, "")
	case foreignComment.MatchString(comment):
		return ""
	default:
		return comment
	}
}
