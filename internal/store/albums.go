package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/handiism/musicbase/internal/model"
)

const albumColumns = "id, title, artist, date, comment, label, path"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlbum(row rowScanner) (model.Album, error) {
	var (
		a                    model.Album
		date, comment, label sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Artist, &date, &comment, &label, &a.Path); err != nil {
		return model.Album{}, err
	}
	d, err := parseDate(date)
	if err != nil {
		return model.Album{}, err
	}
	a.Date = d
	a.Comment = comment.String
	a.Label = label.String
	return a, nil
}

// UpsertAlbum stores an album keyed by (title, artist, path). It returns the
// stored album with its ID and the fields that were written: every mutable
// field for a new album, the changed ones for a known album, none when
// nothing changed.
func (s *Store) UpsertAlbum(ctx context.Context, album model.Album) (model.Album, []model.AlbumField, error) {
	var (
		stored  model.Album
		changed []model.AlbumField
	)
	err := retryOnBusy(ctx, func() error {
		var err error
		stored, changed, err = s.upsertAlbum(ctx, album)
		return err
	})
	if err != nil {
		return model.Album{}, nil, fmt.Errorf("upsert album %q: %w", album.Path, err)
	}
	return stored, changed, nil
}

func (s *Store) upsertAlbum(ctx context.Context, album model.Album) (model.Album, []model.AlbumField, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Album{}, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := scanAlbum(tx.QueryRowContext(ctx,
		`SELECT `+albumColumns+` FROM album WHERE title = ? AND artist = ? AND path = ?`,
		album.Title, album.Artist, album.Path,
	))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			`INSERT INTO album (title, artist, date, comment, label, path) VALUES (?, ?, ?, ?, ?, ?)`,
			album.Title, album.Artist, nullableDate(album.Date),
			nullableString(album.Comment), nullableString(album.Label), album.Path,
		)
		if err != nil {
			return model.Album{}, nil, err
		}
		if album.ID, err = res.LastInsertId(); err != nil {
			return model.Album{}, nil, err
		}
		return album, model.AlbumFields(), tx.Commit()
	case err != nil:
		return model.Album{}, nil, err
	}

	changed := existing.Diff(album)
	if len(changed) == 0 {
		return existing, nil, nil
	}
	existing.Apply(album, changed)
	_, err = tx.ExecContext(ctx,
		`UPDATE album SET date = ?, comment = ?, label = ? WHERE id = ?`,
		nullableDate(existing.Date), nullableString(existing.Comment), nullableString(existing.Label), existing.ID,
	)
	if err != nil {
		return model.Album{}, nil, err
	}
	return existing, changed, tx.Commit()
}

// AlbumByPath returns the first album stored for a directory, or nil.
func (s *Store) AlbumByPath(ctx context.Context, path string) (*model.Album, error) {
	a, err := scanAlbum(s.db.QueryRowContext(ctx,
		`SELECT `+albumColumns+` FROM album WHERE path = ? ORDER BY id LIMIT 1`, path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get album by path: %w", err)
	}
	return &a, nil
}

// AlbumPaths returns the set of directories that have an album.
func (s *Store) AlbumPaths(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT path FROM album`)
	if err != nil {
		return nil, fmt.Errorf("list album paths: %w", err)
	}
	defer rows.Close()

	paths := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan album path: %w", err)
		}
		paths[p] = true
	}
	return paths, rows.Err()
}

// CountAlbums returns the number of stored albums.
func (s *Store) CountAlbums(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM album`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count albums: %w", err)
	}
	return n, nil
}
