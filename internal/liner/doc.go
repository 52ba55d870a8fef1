// Package liner scrapes album reviews from a liner-notes site. The review
// becomes the description of jazz album sheets.
package liner
