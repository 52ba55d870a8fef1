// Package reconcile matches an album directory with a catalog release.
//
// The directory's artist and title are searched for in the catalog. Every
// hit is fetched (falling back to its master release) and kept when its
// artist and title share words with the local ones and it has the expected
// number of tracks. Among the survivors a release with credits on a
// non-vinyl format is preferred. The result is written as the album sheet.
package reconcile
