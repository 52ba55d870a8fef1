package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"punctuation only", "?!-- ,,", []string{}},
		{"duplicates collapse", "Yes yes YES!", []string{"yes"}},
		{"comma and space", "Yes, The Band", []string{"band", "the", "yes"}},
		{"underscore is a word character", "Close_to the-Edge", []string{"close_to", "edge", "the"}},
		{"digits kept", "Live at Montreux 1971", []string{"1971", "at", "live", "montreux"}},
		{"brackets", "Fragile (Remaster) [2003]", []string{"2003", "fragile", "remaster"}},
		{"non-ascii letters", "Björk Guðmundsdóttir", []string{"björk", "guðmundsdóttir"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			assert.Equal(t, tt.want, got.Sorted())
			assert.False(t, got.Has(""), "token set must never contain the empty string")
		})
	}
}

func TestTokenize_OrderInsensitive(t *testing.T) {
	a := Tokenize("close to the edge")
	b := Tokenize("EDGE the TO close close")
	assert.Equal(t, a, b)
}

func TestTokenSet_Intersects(t *testing.T) {
	assert.True(t, Tokenize("Yes").Intersects(Tokenize("Yes, The Band")))
	assert.True(t, Tokenize("Yes, The Band").Intersects(Tokenize("Yes")))
	assert.False(t, Tokenize("Yes").Intersects(Tokenize("No")))
	assert.False(t, Tokenize("").Intersects(Tokenize("anything")))
}

func TestTokenSet_SubsetOf(t *testing.T) {
	assert.True(t, Tokenize("edge").SubsetOf(Tokenize("close to the edge")))
	assert.False(t, Tokenize("edge of time").SubsetOf(Tokenize("close to the edge")))
	assert.True(t, Tokenize("").SubsetOf(Tokenize("close")))
}

func TestTokenSet_Without(t *testing.T) {
	set := Tokenize("The Sound of a Drum")
	got := set.Without("a", "an", "the")

	assert.Equal(t, []string{"drum", "of", "sound"}, got.Sorted())
	assert.True(t, set.Has("the"), "Without must not modify the receiver")
}

func TestStripNonAlphanumeric(t *testing.T) {
	tests := []struct {
		text   string
		prefix string
		want   string
	}{
		{"Close to the Edge", "", "ClosetotheEdge"},
		{"01_Close_to_the_Edge", "01", "ClosetotheEdge"},
		{"03 - Heart of the Sunrise", "03", "HeartoftheSunrise"},
		{"Roundabout (Live) [2003]", "", "RoundaboutLive2003"},
		{"What's Up? ~@&%<>=!", "", "WhatsUp"},
		{"Song 2", "01", "Song2"},
		{"0101 Song", "01", "01Song"},
		{"", "01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := StripNonAlphanumeric(tt.text, tt.prefix)
			if got != tt.want {
				t.Errorf("StripNonAlphanumeric(%q, %q) = %q, want %q", tt.text, tt.prefix, got, tt.want)
			}
		})
	}
}
