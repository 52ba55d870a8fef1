package discogs

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/handiism/musicbase/internal/discogs/dto"
	"github.com/handiism/musicbase/internal/http"
	"github.com/handiism/musicbase/internal/model"
)

// ErrNotFound is returned when the catalog has no record with the given id.
var ErrNotFound = errors.New("not found in catalog")

// notFoundMessage is the body message the catalog sends for unknown ids.
const notFoundMessage = "Release not found."

// SearchParams narrows a database search. Empty fields are not sent.
type SearchParams struct {
	Query   string
	Artist  string
	Title   string
	Genre   string
	Year    string
	Country string
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	add := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(key, value)
		}
	}
	add("q", p.Query)
	add("artist", p.Artist)
	add("release_title", p.Title)
	add("genre", p.Genre)
	add("year", p.Year)
	add("country", p.Country)
	return v
}

// IsEmpty reports whether no field is set.
func (p SearchParams) IsEmpty() bool {
	return len(p.values()) == 0
}

// Result is one search hit.
type Result struct {
	ID    int
	Type  string
	Title string
}

// Client talks to the catalog REST API.
//
// Example usage:
//
//	client := discogs.NewClient(httpClient, "https://api.discogs.com")
//	results, err := client.Search(ctx, discogs.SearchParams{Artist: "Yes", Title: "Relayer"})
//	for _, r := range results {
//	    release, err := client.Release(ctx, r.ID)
//	    ...
//	}
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a catalog client on top of an HTTP client. The token,
// if any, is expected in the HTTP client's headers (see TokenHeader).
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{http: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// TokenHeader returns the headers that authenticate requests with a
// personal access token. An empty token yields no headers.
func TokenHeader(token string) nethttp.Header {
	if token == "" {
		return nil
	}
	return nethttp.Header{"Authorization": {"Discogs token=" + token}}
}

// Search queries the release database. Only release and master hits are
// returned, in catalog order.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Result, error) {
	var page dto.JSONSearch
	u := c.baseURL + "/database/search?" + params.values().Encode()
	if err := c.http.GetJSON(ctx, u, &page); err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	var results []Result
	for _, r := range page.Results {
		if r.Type != "release" && r.Type != "master" {
			continue
		}
		results = append(results, Result{ID: r.ID, Type: r.Type, Title: r.Title})
	}
	return results, nil
}

// Release fetches a release by id.
func (c *Client) Release(ctx context.Context, id int) (*model.Release, error) {
	return c.fetch(ctx, "/releases/"+strconv.Itoa(id), id)
}

// Master fetches a master release by id. Masters carry no labels, formats or
// credits.
func (c *Client) Master(ctx context.Context, id int) (*model.Release, error) {
	return c.fetch(ctx, "/masters/"+strconv.Itoa(id), id)
}

func (c *Client) fetch(ctx context.Context, path string, id int) (*model.Release, error) {
	var jr dto.JSONRelease
	if err := c.http.GetJSON(ctx, c.baseURL+path, &jr); err != nil {
		if http.IsStatus(err, nethttp.StatusNotFound) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if jr.Message == notFoundMessage || jr.ID == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return jr.ToRelease(), nil
}
