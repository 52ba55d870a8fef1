package tagging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/musicbase/internal/audio"
	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFakeMP3(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 16), 0o644))
}

func readTags(t *testing.T, path string) model.FileTags {
	t.Helper()
	tags, err := audio.NewReader().Read(path)
	require.NoError(t, err)
	return tags
}

func TestStartWithTrackNumbers(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  bool
	}{
		{"consecutive", []string{"01_A.mp3", "02_B.mp3", "03 C.mp3"}, true},
		{"unordered", []string{"02_B.mp3", "01_A.mp3"}, true},
		{"gap", []string{"01_A.mp3", "03_C.mp3"}, false},
		{"one unnumbered", []string{"01_A.mp3", "B.mp3"}, false},
		{"disc digit", []string{"101_A.mp3", "102_B.mp3"}, true},
		{"no separator", []string{"01A.mp3"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartWithTrackNumbers(tt.files); got != tt.want {
				t.Errorf("StartWithTrackNumbers(%q) = %v, want %v", tt.files, got, tt.want)
			}
		})
	}
}

func TestNumberTracks(t *testing.T) {
	vinyl := numberTracks([]sheet.Track{
		{Position: "A1", Title: "One"},
		{Title: "Heading"},
		{Position: "A2", Title: "Two"},
		{Position: "B1", Title: "Three"},
	})
	require.Len(t, vinyl, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{vinyl[0].Number, vinyl[1].Number, vinyl[2].Number})

	numeric := numberTracks([]sheet.Track{{Position: "2", Title: "b"}, {Position: "1", Title: "a"}})
	assert.Equal(t, 2, numeric[0].Number)
	assert.Equal(t, 1, numeric[1].Number)

	discs := numberTracks([]sheet.Track{{Position: "1-1", Title: "a"}, {Position: "2-1", Title: "b"}})
	assert.Equal(t, 2, discs[1].Number)
}

func TestFindTrack(t *testing.T) {
	tracks := numberTracks([]sheet.Track{
		{Position: "1", Title: "Close to the Edge"},
		{Position: "2", Title: "And You and I"},
		{Position: "3", Title: "Siberian Khatru"},
	})

	tests := []struct {
		file   string
		number bool
		want   int
	}{
		{"01_Close_to_the_Edge.mp3", true, 1},
		{"And You And I.mp3", false, 2},
		{"03 - Siberian Khatru (Remastered).flac", false, 3},
		{"Bonus.mp3", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			stem, number := splitFileName(tt.file, tt.number)
			got, ok := findTrack(tracks, stem, number)
			if tt.want == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Number)
		})
	}
}

func TestCreditsFor(t *testing.T) {
	tests := []struct {
		name  string
		sheet sheet.Sheet
		want  people
	}{
		{
			"rock",
			sheet.Sheet{Artist: "Yes", Genre: "Rock"},
			people{artist: "Yes"},
		},
		{
			"classical",
			sheet.Sheet{Artist: "Ludwig van Beethoven, Berliner Philharmoniker", Genre: "Classical"},
			people{
				artist:      "Ludwig van Beethoven, Berliner Philharmoniker",
				albumArtist: "Berliner Philharmoniker",
				composer:    "Beethoven, Ludwig van",
			},
		},
		{
			"opera with performer",
			sheet.Sheet{Artist: "Giuseppe Verdi", Performer: "Maria Callas", Genre: "Opera"},
			people{artist: "Giuseppe Verdi, Maria Callas", albumArtist: "Maria Callas", composer: "Verdi, Giuseppe"},
		},
		{
			"sheet composer wins",
			sheet.Sheet{Artist: "Bach", Composer: "Bach, Johann Sebastian", Genre: "Classical"},
			people{artist: "Bach", composer: "Bach, Johann Sebastian"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, creditsFor(&tt.sheet))
		})
	}
}

func testSheet() *sheet.Sheet {
	return &sheet.Sheet{
		Title:  "Close to the Edge",
		Artist: "Yes",
		Genre:  "Rock",
		Year:   1972,
		Tracks: []sheet.Track{
			{Position: "A", Title: "Close to the Edge", Duration: "18:50"},
			{Position: "B1", Title: "And You and I"},
			{Position: "B2", Title: "Siberian Khatru"},
		},
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Siberian Khatru.mp3", "And You and I.mp3", "Close To The Edge.mp3", "Bonus.mp3"} {
		writeFakeMP3(t, dir, name)
	}

	s := NewSetter(audio.DefaultTagConfig(), Options{
		RenameTracks:   true,
		Playlist:       true,
		PlaylistFormat: model.PlaylistFormatM3U,
		M3UExtended:    true,
	}, nil)
	res, err := s.Apply(context.Background(), dir, testSheet())
	require.NoError(t, err)

	assert.Len(t, res.Tagged, 3)
	assert.Equal(t, []string{"Bonus.mp3"}, res.Unmatched)
	assert.Equal(t, "03_Siberian Khatru.mp3", res.Renamed["Siberian Khatru.mp3"])

	tags := readTags(t, filepath.Join(dir, "02_And You and I.mp3"))
	assert.Equal(t, "And You and I", tags.Title())
	assert.Equal(t, "Yes", tags.Artist())
	assert.Equal(t, "Close to the Edge", tags.Album())
	assert.Equal(t, "1972", tags.Year())
	assert.Equal(t, "2/4", tags.Track())

	require.NotEmpty(t, res.Playlist)
	data, err := os.ReadFile(res.Playlist)
	require.NoError(t, err)
	assert.Contains(t, string(data), "01_Close To The Edge.mp3")
	assert.Contains(t, string(data), "#EXTINF:1130,")
}

func TestApplyNumberedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"01_Close_to_the_Edge.mp3", "02_And_You_and_I.mp3", "03_Siberian_Khatru.mp3"} {
		writeFakeMP3(t, dir, name)
	}

	res, err := NewSetter(nil, Options{RenameTracks: true}, nil).Apply(context.Background(), dir, testSheet())
	require.NoError(t, err)
	assert.Len(t, res.Tagged, 3)
	assert.Empty(t, res.Renamed)
	assert.Equal(t, "3/3", readTags(t, filepath.Join(dir, "03_Siberian_Khatru.mp3")).Track())
}

func TestApplyNoFiles(t *testing.T) {
	_, err := NewSetter(nil, Options{}, nil).Apply(context.Background(), t.TempDir(), testSheet())
	assert.ErrorIs(t, err, ErrNoAudioFiles)
}

func TestParseCorrections(t *testing.T) {
	c, err := ParseCorrections([]byte(`
Yes_-_[1972]_Close_to_the_Edge:
- genre: Progressive Rock
- year: 1972
- TrackNumber: 3
`))
	require.NoError(t, err)
	assert.Equal(t, Corrections{
		"Yes_-_[1972]_Close_to_the_Edge": {
			{"genre": "Progressive Rock"},
			{"year": "1972"},
			{"track": "3"},
		},
	}, c)

	_, err = ParseCorrections([]byte("d:\n- mood: happy\n"))
	assert.Error(t, err)
	_, err = ParseCorrections([]byte("d:\n- year: soon\n"))
	assert.Error(t, err)
}

func TestCorrect(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "Yes_-_[1972]_Close_to_the_Edge")
	require.NoError(t, os.Mkdir(dir, 0o755))
	for _, name := range []string{"01_Close_to_the_Edge.mp3", "02_And_You_and_I.mp3"} {
		writeFakeMP3(t, dir, name)
	}

	s := NewSetter(nil, Options{}, nil)
	_, err := s.Apply(context.Background(), dir, &sheet.Sheet{
		Title: "Close to the Edge", Artist: "Yes", Genre: "Rock", Year: 1972,
		Tracks: []sheet.Track{{Position: "1", Title: "Close to the Edge"}, {Position: "2", Title: "And You and I"}},
	})
	require.NoError(t, err)

	changed, err := s.Correct(context.Background(), base, Corrections{
		"Yes_-_[1972]_Close_to_the_Edge": {{"genre": "Progressive Rock"}, {"year": "1972"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, changed["Yes_-_[1972]_Close_to_the_Edge"])

	tags := readTags(t, filepath.Join(dir, "02_And_You_and_I.mp3"))
	assert.Equal(t, "Progressive Rock", tags.Genre())
	assert.Equal(t, "And You and I", tags.Title())
	assert.Equal(t, "2/2", tags.Track())

	changed, err = s.Correct(context.Background(), base, Corrections{
		"Yes_-_[1972]_Close_to_the_Edge": {{"genre": "Progressive Rock"}, {"track": "2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, changed["Yes_-_[1972]_Close_to_the_Edge"], "only the first file has another track number")
}
