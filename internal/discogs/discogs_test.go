package discogs

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/handiism/musicbase/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const releaseJSON = `{
  "id": 1730145,
  "master_id": 210233,
  "title": "Five Peace Band Live",
  "year": 2009,
  "released": "2009-02-10",
  "country": "US",
  "artists": [{"name": "Chick Corea"}, {"name": "John McLaughlin (2)"}],
  "labels": [{"name": "Concord Records", "catno": "CRE-31504-02"}],
  "series": [],
  "genres": ["Jazz"],
  "styles": ["Fusion", "Contemporary Jazz"],
  "formats": [{"name": "CD", "qty": "2", "descriptions": ["Album"]}],
  "extraartists": [{"name": "Kenny Garrett", "role": "Alto Saxophone", "tracks": "1-1 to 2-3"}],
  "tracklist": [
    {"position": "", "title": "CD 1", "type_": "heading", "duration": ""},
    {"position": "1-1", "title": "Raju", "type_": "track", "duration": "12:37",
     "extraartists": [{"name": "John McLaughlin", "role": "Written-By"}]},
    {"position": "1-2", "title": "The Disguise", "type_": "track", "duration": "13:56"}
  ],
  "notes": "Recorded live in Europe.\r\nMixed in LA.",
  "images": [{"uri": "https://img/cover.jpg", "type": "primary", "width": 600, "height": 600}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/releases/1730145", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "Discogs token=tkn", r.Header.Get("Authorization"))
		w.Write([]byte(releaseJSON))
	})
	mux.HandleFunc("/releases/404", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
		w.Write([]byte(`{"message": "Release not found."}`))
	})
	mux.HandleFunc("/masters/777", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte(`{"message": "Release not found."}`))
	})
	mux.HandleFunc("/masters/210233", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte(`{"id": 210233, "main_release": 1730145, "title": "Five Peace Band Live",
			"artists": [{"name": "Five Peace Band"}], "year": 2009}`))
	})
	mux.HandleFunc("/database/search", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Chick Corea", q.Get("artist"))
		assert.Equal(t, "Five Peace Band Live", q.Get("release_title"))
		assert.False(t, q.Has("genre"))
		w.Write([]byte(`{"pagination": {"page": 1, "pages": 1, "items": 3},
			"results": [
				{"id": 1730145, "type": "release", "title": "Chick Corea - Five Peace Band Live"},
				{"id": 1, "type": "artist", "title": "Chick Corea"},
				{"id": 210233, "type": "master", "title": "Five Peace Band Live"}
			]}`))
	})
	return httptest.NewServer(mux)
}

func newTestClient(srv *httptest.Server) *Client {
	hc := http.NewClient(http.Options{Header: TokenHeader("tkn")})
	return NewClient(hc, srv.URL+"/")
}

func TestRelease(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	r, err := newTestClient(srv).Release(context.Background(), 1730145)
	require.NoError(t, err)

	assert.Equal(t, "Five Peace Band Live", r.Title)
	assert.Equal(t, "Chick Corea, John McLaughlin", r.ArtistName())
	assert.Equal(t, "Concord Records CRE-31504-02", r.LabelName())
	assert.Equal(t, 2009, r.Year)
	assert.Equal(t, "2009-02-10", r.Released)
	assert.Equal(t, 2, r.AudioTrackCount())
	assert.True(t, r.HasCredits())
	assert.False(t, r.IsAnalogueOnly())
	assert.Equal(t, "Written-By - John McLaughlin", r.Tracklist[1].Credits[0].String())
	img, ok := r.PrimaryImage()
	assert.True(t, ok)
	assert.Equal(t, "https://img/cover.jpg", img.URI)
}

func TestReleaseNotFound(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	c := newTestClient(srv)

	_, err := c.Release(context.Background(), 404)
	assert.True(t, errors.Is(err, ErrNotFound), "404 status: %v", err)

	_, err = c.Master(context.Background(), 777)
	assert.True(t, errors.Is(err, ErrNotFound), "message body: %v", err)
}

func TestMaster(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	r, err := newTestClient(srv).Master(context.Background(), 210233)
	require.NoError(t, err)
	assert.Equal(t, "Five Peace Band", r.ArtistName())
	assert.Empty(t, r.Formats)
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	results, err := newTestClient(srv).Search(context.Background(), SearchParams{
		Artist: "Chick Corea",
		Title:  "Five Peace Band Live",
		Genre:  "  ",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Result{ID: 1730145, Type: "release", Title: "Chick Corea - Five Peace Band Live"}, results[0])
	assert.Equal(t, "master", results[1].Type)
}

func TestSearchParamsIsEmpty(t *testing.T) {
	assert.True(t, SearchParams{}.IsEmpty())
	assert.True(t, SearchParams{Query: " "}.IsEmpty())
	assert.False(t, SearchParams{Year: "1972"}.IsEmpty())
}

func TestParseReleaseURL(t *testing.T) {
	tests := []struct {
		input  string
		wantID int
		slug   string
	}{
		{"https://www.discogs.com/release/15639198-Art-Blakey-The-Jazz-Messengers-Just-Coolin", 15639198, "Art-Blakey-The-Jazz-Messengers-Just-Coolin"},
		{"15639198-Art-Blakey-The-Jazz-Messengers-Just-Coolin", 15639198, "Art-Blakey-The-Jazz-Messengers-Just-Coolin"},
		{"https://www.discogs.com/release/1730145/", 1730145, ""},
		{"https://www.discogs.com/master/xyz", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, slug := ParseReleaseURL(tt.input)
			if id != tt.wantID {
				t.Errorf("ParseReleaseURL(%q) id = %d, want %d", tt.input, id, tt.wantID)
			}
			if tt.wantID != 0 && slug != tt.slug {
				t.Errorf("ParseReleaseURL(%q) slug = %q, want %q", tt.input, slug, tt.slug)
			}
		})
	}
}

func TestArtistFromSlug(t *testing.T) {
	tests := []struct {
		slug  string
		title string
		want  string
	}{
		{"Art-Blakey-The-Jazz-Messengers-Just-Coolin", "Just Coolin'", "Art-Blakey-The-Jazz-Messengers"},
		{"Art-Blakey-The-Jazz-Messengers-Just-Coolin", "Just Coolin (Remastered)", "Art-Blakey-The-Jazz-Messengers"},
		{"Yes-Relayer", "Tales from Topographic Oceans", ""},
		{"Yes-Relayer", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug+"/"+tt.title, func(t *testing.T) {
			if got := ArtistFromSlug(tt.slug, tt.title); got != tt.want {
				t.Errorf("ArtistFromSlug(%q, %q) = %q, want %q", tt.slug, tt.title, got, tt.want)
			}
		})
	}
}
