package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		local  Candidate
		remote Candidate
		want   bool
	}{
		{
			name:   "abbreviated artist",
			local:  Candidate{Artist: "Yes", Title: "Close to the Edge"},
			remote: Candidate{Artist: "Yes, The Band", Title: "Close to the Edge (Remaster)"},
			want:   true,
		},
		{
			name:   "no overlap",
			local:  Candidate{Artist: "Yes", Title: "Fragile"},
			remote: Candidate{Artist: "No", Title: "Tales"},
			want:   false,
		},
		{
			name:   "artist overlaps title does not",
			local:  Candidate{Artist: "Miles Davis", Title: "Kind of Blue"},
			remote: Candidate{Artist: "Miles Davis", Title: "Bitches Brew"},
			want:   false,
		},
		{
			name:   "case and punctuation ignored",
			local:  Candidate{Artist: "MILES DAVIS", Title: "kind-of-blue"},
			remote: Candidate{Artist: "Miles Davis", Title: "Kind Of Blue"},
			want:   true,
		},
		{
			name:   "pinned release skips tokens",
			local:  Candidate{Artist: "Yes", Title: "Fragile", ReleaseID: "1234"},
			remote: Candidate{Artist: "No", Title: "Tales"},
			want:   true,
		},
		{
			name:   "query vetoes",
			local:  Candidate{Artist: "Yes", Title: "Fragile", Query: "roundabout"},
			remote: Candidate{Artist: "Yes", Title: "Fragile"},
			want:   false,
		},
		{
			name:   "query satisfied",
			local:  Candidate{Artist: "Yes", Title: "Fragile", Query: "yes fragile 1971"},
			remote: Candidate{Artist: "Yes", Title: "Fragile"},
			want:   true,
		},
		{
			name:   "empty local artist",
			local:  Candidate{Title: "Fragile"},
			remote: Candidate{Artist: "Yes", Title: "Fragile"},
			want:   false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Matches(tc.local, tc.remote))
		})
	}
}

func TestMatches_SymmetricWithoutQuery(t *testing.T) {
	pairs := [][2]Candidate{
		{{Artist: "Yes", Title: "Close to the Edge"}, {Artist: "Yes, The Band", Title: "Close to the Edge (Remaster)"}},
		{{Artist: "Yes", Title: "Fragile"}, {Artist: "No", Title: "Tales"}},
		{{Artist: "Chick Corea", Title: "Five Peace Band"}, {Artist: "Chick Corea & John McLaughlin", Title: "Five Peace Band Live"}},
	}
	for _, p := range pairs {
		assert.Equal(t, Matches(p[0], p[1]), Matches(p[1], p[0]), "%v", p)
	}
}

func TestContainsPhrase(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     bool
	}{
		{"Close to the Edge (Remaster)", "Close to the Edge", true},
		{"Close to Edge", "The Close to the Edge", true},
		{"Close to the Edge", "Close to the Edge Live", false},
		{"Roundabout", "the", false},
		{"Roundabout", "", false},
		{"And You and I", "and you and i", true},
	}
	for _, tc := range tests {
		if got := ContainsPhrase(tc.haystack, tc.needle); got != tc.want {
			t.Errorf("ContainsPhrase(%q, %q) = %v, want %v", tc.haystack, tc.needle, got, tc.want)
		}
	}
}
