package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/handiism/musicbase/internal/model"
)

const songColumns = "id, album_id, title, track_id, genre, artist, composer, performer, file, comment, date"

func scanSong(row rowScanner) (model.Song, error) {
	var (
		s                                         model.Song
		albumID                                   sql.NullInt64
		genre, composer, performer, comment, date sql.NullString
	)
	err := row.Scan(&s.ID, &albumID, &s.Title, &s.TrackID, &genre, &s.Artist,
		&composer, &performer, &s.File, &comment, &date)
	if err != nil {
		return model.Song{}, err
	}
	d, err := parseDate(date)
	if err != nil {
		return model.Song{}, err
	}
	s.AlbumID = albumID.Int64
	s.Genre = genre.String
	s.Composer = composer.String
	s.Performer = performer.String
	s.Comment = comment.String
	s.Date = d
	return s, nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// UpsertSong stores a song keyed by (title, file, artist) and reports the
// written fields the same way UpsertAlbum does.
func (s *Store) UpsertSong(ctx context.Context, song model.Song) (model.Song, []model.SongField, error) {
	var (
		stored  model.Song
		changed []model.SongField
	)
	err := retryOnBusy(ctx, func() error {
		var err error
		stored, changed, err = s.upsertSong(ctx, song)
		return err
	})
	if err != nil {
		return model.Song{}, nil, fmt.Errorf("upsert song %q: %w", song.File, err)
	}
	return stored, changed, nil
}

func (s *Store) upsertSong(ctx context.Context, song model.Song) (model.Song, []model.SongField, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Song{}, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := scanSong(tx.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM song WHERE title = ? AND file = ? AND artist = ?`,
		song.Title, song.File, song.Artist,
	))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			`INSERT INTO song (album_id, title, track_id, genre, artist, composer, performer, file, comment, date)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			nullableID(song.AlbumID), song.Title, song.TrackID, nullableString(song.Genre), song.Artist,
			nullableString(song.Composer), nullableString(song.Performer), song.File,
			nullableString(song.Comment), nullableDate(song.Date),
		)
		if err != nil {
			return model.Song{}, nil, err
		}
		if song.ID, err = res.LastInsertId(); err != nil {
			return model.Song{}, nil, err
		}
		return song, model.SongFields(), tx.Commit()
	case err != nil:
		return model.Song{}, nil, err
	}

	changed := existing.Diff(song)
	if len(changed) == 0 {
		return existing, nil, nil
	}
	existing.Apply(song, changed)
	_, err = tx.ExecContext(ctx,
		`UPDATE song SET album_id = ?, track_id = ?, genre = ?, composer = ?, performer = ?, comment = ?, date = ?
         WHERE id = ?`,
		nullableID(existing.AlbumID), existing.TrackID, nullableString(existing.Genre),
		nullableString(existing.Composer), nullableString(existing.Performer),
		nullableString(existing.Comment), nullableDate(existing.Date), existing.ID,
	)
	if err != nil {
		return model.Song{}, nil, err
	}
	return existing, changed, tx.Commit()
}

// SongsByAlbum returns the songs of an album ordered by track.
func (s *Store) SongsByAlbum(ctx context.Context, albumID int64) ([]model.Song, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+songColumns+` FROM song WHERE album_id = ? ORDER BY track_id, file`, albumID)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	var songs []model.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// CountSongs returns the number of stored songs.
func (s *Store) CountSongs(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM song`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count songs: %w", err)
	}
	return n, nil
}
