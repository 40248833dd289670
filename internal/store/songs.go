package store

import (
	"context"

	"rhythm-registry/internal/database"
	"rhythm-registry/internal/models"
)

const songColumns = `id, artist_id, title, album_name, genre, release_date, created_at, updated_at`

type NewSong struct {
	ArtistID    int
	Title       string
	AlbumName   string
	Genre       models.Genre
	ReleaseDate models.Date
}

func scanSong(row rowScanner) (models.Song, error) {
	var song models.Song
	err := row.Scan(
		&song.ID,
		&song.ArtistID,
		&song.Title,
		&song.AlbumName,
		&song.Genre,
		&song.ReleaseDate,
		&song.CreatedAt,
		&song.UpdatedAt,
	)
	return song, err
}

// ListSongsByArtist returns one page of an artist's songs ordered by id.
func ListSongsByArtist(ctx context.Context, q database.Querier, artistID, limit, offset int) ([]models.Song, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+songColumns+`
		 FROM songs
		 WHERE artist_id = $1
		 ORDER BY id ASC
		 LIMIT $2 OFFSET $3`,
		artistID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := make([]models.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// FindSong looks a song up scoped to its artist; a song owned by another
// artist yields sql.ErrNoRows.
func FindSong(ctx context.Context, q database.Querier, songID, artistID int) (models.Song, error) {
	return scanSong(q.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE id = $1 AND artist_id = $2`,
		songID,
		artistID,
	))
}

func InsertSong(ctx context.Context, q database.Querier, song NewSong) (models.Song, error) {
	return scanSong(q.QueryRowContext(ctx,
		`INSERT INTO songs (artist_id, title, album_name, genre, release_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+songColumns,
		song.ArtistID,
		song.Title,
		song.AlbumName,
		song.Genre,
		song.ReleaseDate,
	))
}

// UpdateSong patches a song scoped to its artist and bumps updated_at.
func UpdateSong(ctx context.Context, q database.Querier, songID, artistID int, patch Patch) (models.Song, error) {
	query, args, err := buildUpdate(
		"songs",
		patch,
		"updated_at = NOW()",
		"id = %s AND artist_id = %s",
		[]any{songID, artistID},
		songColumns,
	)
	if err != nil {
		return models.Song{}, err
	}
	return scanSong(q.QueryRowContext(ctx, query, args...))
}

func DeleteSong(ctx context.Context, q database.Querier, songID, artistID int) (bool, error) {
	result, err := q.ExecContext(ctx,
		`DELETE FROM songs WHERE id = $1 AND artist_id = $2`,
		songID,
		artistID,
	)
	if err != nil {
		return false, err
	}
	return affectedOne(result)
}

func CountSongs(ctx context.Context, q database.Querier) (int64, error) {
	var total int64
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM songs`).Scan(&total)
	return total, err
}
