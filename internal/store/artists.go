package store

import (
	"context"
	"database/sql"

	"rhythm-registry/internal/database"
	"rhythm-registry/internal/models"
)

const artistColumns = `id, name, dob, gender, address, first_release_year, no_of_albums_released, bio, user_id, created_at`

// NewArtist is the data needed to insert an artist row. Nil pointers are
// stored as NULL.
type NewArtist struct {
	Name               string
	DOB                *models.Date
	Gender             *models.Gender
	Address            *string
	FirstReleaseYear   *int
	NoOfAlbumsReleased int
	Bio                *string
	UserID             *int
}

func scanArtist(row rowScanner) (models.Artist, error) {
	var artist models.Artist
	err := row.Scan(
		&artist.ID,
		&artist.Name,
		&artist.DOB,
		&artist.Gender,
		&artist.Address,
		&artist.FirstReleaseYear,
		&artist.NoOfAlbumsReleased,
		&artist.Bio,
		&artist.UserID,
		&artist.CreatedAt,
	)
	return artist, err
}

func scanArtists(rows *sql.Rows) ([]models.Artist, error) {
	defer rows.Close()

	artists := make([]models.Artist, 0)
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

// FindArtistByUserID resolves the artist linked to a user account.
func FindArtistByUserID(ctx context.Context, q database.Querier, userID int) (models.Artist, error) {
	return scanArtist(q.QueryRowContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE user_id = $1`,
		userID,
	))
}

func ArtistExists(ctx context.Context, q database.Querier, id int) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM artists WHERE id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}

// ListArtists returns one page of artists ordered by ascending id.
func ListArtists(ctx context.Context, q database.Querier, limit, offset int) ([]models.Artist, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+artistColumns+` FROM artists ORDER BY id ASC LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	return scanArtists(rows)
}

// ListAllArtists returns every artist ordered by id, for CSV export.
func ListAllArtists(ctx context.Context, q database.Querier) ([]models.Artist, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+artistColumns+` FROM artists ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return scanArtists(rows)
}

func InsertArtist(ctx context.Context, q database.Querier, artist NewArtist) (models.Artist, error) {
	return scanArtist(q.QueryRowContext(ctx,
		`INSERT INTO artists (name, dob, gender, address, first_release_year, no_of_albums_released, bio, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+artistColumns,
		artist.Name,
		artist.DOB,
		artist.Gender,
		artist.Address,
		artist.FirstReleaseYear,
		artist.NoOfAlbumsReleased,
		artist.Bio,
		artist.UserID,
	))
}

// UpdateArtist returns sql.ErrNoRows when id does not exist.
func UpdateArtist(ctx context.Context, q database.Querier, id int, patch Patch) (models.Artist, error) {
	query, args, err := buildUpdate("artists", patch, "", "id = %s", []any{id}, artistColumns)
	if err != nil {
		return models.Artist{}, err
	}
	return scanArtist(q.QueryRowContext(ctx, query, args...))
}

func DeleteArtist(ctx context.Context, q database.Querier, id int) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affectedOne(result)
}

func CountArtists(ctx context.Context, q database.Querier) (int64, error) {
	var total int64
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&total)
	return total, err
}
