// Package store persists the collection in SQLite.
//
// The database holds two tables. album rows are keyed by (title, artist,
// path) and song rows by (title, file, artist); both carry the mutable fields
// of model.Album and model.Song. Upserts report which fields they wrote so
// the collector can count new and modified albums.
//
// The schema is embedded and versioned. Opening a database written with a
// different schema version fails with ErrSchemaMismatch.
package store
