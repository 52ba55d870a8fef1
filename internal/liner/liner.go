package liner

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gosimple/slug"
	"github.com/handiism/musicbase/internal/http"
	"github.com/handiism/musicbase/internal/textnorm"
)

// ErrNoText is returned when the page has no review for the album.
var ErrNoText = errors.New("no liner notes")

const reviewSelector = "div.news_glowny_prawy"

var whitespace = regexp.MustCompile(`[ \n]+`)

// Getter fetches album reviews from the liner-notes site.
type Getter struct {
	http    *http.Client
	baseURL string
}

// NewGetter creates a getter. baseURL is the address review slugs are
// appended to, e.g. https://jazzforum.com.pl/main/cd/.
func NewGetter(httpClient *http.Client, baseURL string) *Getter {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Getter{http: httpClient, baseURL: baseURL}
}

// PageURL returns the review address for a query, or for the title when the
// query is empty.
func (g *Getter) PageURL(title, query string) string {
	if query == "" {
		query = title
	}
	return g.baseURL + slug.Make(query)
}

// Description returns the review text of an album: its paragraphs with
// whitespace collapsed, without repeats, separated by blank lines.
func (g *Getter) Description(ctx context.Context, artist, title, query string) (string, error) {
	page, err := g.http.GetString(ctx, g.PageURL(title, query))
	if err != nil {
		if http.IsStatus(err, nethttp.StatusNotFound) {
			return "", ErrNoText
		}
		return "", fmt.Errorf("get liner notes: %w", err)
	}
	return Extract(page, artist, title)
}

// Extract pulls the review text out of a page.
func Extract(page, artist, title string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse liner notes page: %w", err)
	}

	review := doc.Find(reviewSelector).First()
	if review.Length() == 0 {
		return "", ErrNoText
	}
	if !describes(review, artist, title) {
		return "", fmt.Errorf("review is about another album: %w", ErrNoText)
	}

	var paragraphs []string
	seen := make(map[string]bool)
	review.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(whitespace.ReplaceAllString(p.Text(), " "))
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		paragraphs = append(paragraphs, text)
	})
	if len(paragraphs) == 0 {
		return "", ErrNoText
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// describes rejects a review only when neither its heading shares a word
// with the title nor its byline shares a word with the artist.
func describes(review *goquery.Selection, artist, title string) bool {
	heading := textnorm.Tokenize(review.Find("h3").First().Text())
	byline := textnorm.Tokenize(review.Find("h4").First().Text())
	return textnorm.Tokenize(title).Intersects(heading) || textnorm.Tokenize(artist).Intersects(byline)
}
