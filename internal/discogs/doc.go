// Package discogs is a small client for the online music catalog used to
// fill album sheets.
//
// It searches the release database, fetches releases and master releases,
// and converts the JSON documents (package dto) to model.Release:
//
//	hc := http.NewClient(http.Options{Header: discogs.TokenHeader(token)})
//	client := discogs.NewClient(hc, "https://api.discogs.com")
//	release, err := client.Release(ctx, 1730145)
//	if errors.Is(err, discogs.ErrNotFound) {
//	    // try the master with the same id
//	}
//
// ParseReleaseURL and ArtistFromSlug pick the id and the artist out of a
// release page URL given on the command line.
package discogs
