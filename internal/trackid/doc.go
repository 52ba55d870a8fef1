// Package trackid maps track identifiers to dense zero-based ranks in play
// order.
//
// Identifiers come from catalog track lists or local file names: plain
// numbers ("3", "03", "3/12") or vinyl side positions ("A1", "B2"). Vinyl
// positions keep the catalog order. Numbers are sorted ascending.
//
//	trackid.BuildIndex([]string{"A1", "A2", "B1"}) // {"A1": 0, "A2": 1, "B1": 2}
//	trackid.BuildIndex([]string{"3", "1", "2"})    // {"1": 0, "2": 1, "3": 2}
package trackid
