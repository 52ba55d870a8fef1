package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned for responses other than 200 OK.
type StatusError struct {
	Code   int
	Status string
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Options configures a Client. Zero values select the defaults of NewClient.
type Options struct {
	// UserAgent is sent with every request.
	UserAgent string

	// Header holds extra headers sent with every request (tokens, Accept).
	Header http.Header

	// Timeout bounds a single attempt.
	Timeout time.Duration

	// MaxRetries is the number of attempts for a request.
	MaxRetries int

	// RetryCooldown and RetryExponent give the wait before attempt n+1:
	// RetryCooldown * RetryExponent^n.
	RetryCooldown time.Duration
	RetryExponent float64
}

// Client wraps HTTP operations for the catalog and liner-notes sites.
//
// Client provides:
//   - Configured User-Agent and extra headers (catalog token)
//   - Timeout handling
//   - Retries with exponential backoff on network errors, 429 and 5xx
//   - JSON decoding through json-iterator
//
// Example usage:
//
//	client := NewClient(Options{UserAgent: "musicbase/1.0", MaxRetries: 5})
//
//	// Fetch HTML content
//	html, err := client.GetString(ctx, "https://jazzforum.com.pl/main/cd/five-peace-band-live")
//
//	// Decode a JSON document
//	var release dto.Release
//	err = client.GetJSON(ctx, "https://api.discogs.com/releases/1730145", &release)
type Client struct {
	httpClient *http.Client
	opts       Options
	sleep      func(ctx context.Context, d time.Duration)
}

// NewClient creates a new HTTP client.
//
// Unset options default to:
//   - 60 second timeout
//   - "musicbase" User-Agent header
//   - 1 attempt, 200ms cooldown, exponent 4
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "musicbase"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.RetryCooldown <= 0 {
		opts.RetryCooldown = 200 * time.Millisecond
	}
	if opts.RetryExponent < 1 {
		opts.RetryExponent = 4
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
		sleep:      waitForRetry,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent and headers. Failed
// attempts are retried when the error is transient.
//
// Returns an error if:
//   - The request fails on every attempt
//   - The response status is not 200 OK (a *StatusError)
//   - Reading the body fails
//
// Example:
//
//	data, err := client.Get(ctx, "https://i.discogs.com/cover.jpg")
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	var err error
	for tries := 0; tries < c.opts.MaxRetries; tries++ {
		if tries > 0 {
			c.sleep(ctx, c.backoff(tries-1))
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
		body, err = c.get(ctx, url)
		if err == nil || !retryable(ctx, err) {
			break
		}
	}
	return body, err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	for k, vs := range c.opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: data}
	}
	return data, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like HTML.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetJSON performs a GET request and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for small files like cover art images.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, image.URI)
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}

// backoff returns the wait after the given zero-based failed attempt.
func (c *Client) backoff(tries int) time.Duration {
	return time.Duration(float64(c.opts.RetryCooldown) * math.Pow(c.opts.RetryExponent, float64(tries)))
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return true
}

func waitForRetry(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
