// Package http provides the HTTP client used for the online catalog and the
// liner-notes site.
//
// The Client in this package handles:
//   - User-Agent and token headers
//   - Timeout handling
//   - Retries with exponential backoff for transient failures
//   - JSON decoding
//
// # Basic Usage
//
//	client := http.NewClient(http.Options{
//	    UserAgent:     "musicbase/1.0",
//	    Header:        nethttp.Header{"Authorization": {"Discogs token=..."}},
//	    MaxRetries:    5,
//	    RetryCooldown: 200 * time.Millisecond,
//	    RetryExponent: 4,
//	})
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://jazzforum.com.pl/main/cd/five-peace-band-live")
//
//	// Decode JSON
//	err = client.GetJSON(ctx, "https://api.discogs.com/releases/1730145", &release)
//
// # Errors
//
// A response other than 200 OK is returned as *StatusError; use IsStatus to
// test for a code:
//
//	if http.IsStatus(err, 404) {
//	    // not found
//	}
package http
