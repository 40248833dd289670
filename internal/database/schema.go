package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

type schemaStep struct {
	name  string
	query string
}

var schemaSteps = []schemaStep{
	{
		name: "users table",
		query: `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'artist'
			CHECK (role IN ('super_admin', 'artist_manager', 'artist')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`,
	},
	{
		name: "artists table",
		query: `
	CREATE TABLE IF NOT EXISTS artists (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		dob DATE,
		gender VARCHAR(16) CHECK (gender IN ('male', 'female', 'other')),
		address VARCHAR(255),
		first_release_year INTEGER,
		no_of_albums_released INTEGER NOT NULL DEFAULT 0 CHECK (no_of_albums_released >= 0),
		bio TEXT,
		user_id INTEGER UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`,
	},
	{
		name: "songs table",
		query: `
	CREATE TABLE IF NOT EXISTS songs (
		id SERIAL PRIMARY KEY,
		artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		album_name VARCHAR(255) NOT NULL,
		genre VARCHAR(16) NOT NULL CHECK (genre IN ('rnb', 'country', 'classic', 'rock', 'jazz')),
		release_date DATE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`,
	},
	{
		name:  "songs artist index",
		query: `CREATE INDEX IF NOT EXISTS songs_artist_id_idx ON songs(artist_id, id)`,
	},
}

// CreateTables creates all required tables in the database
func CreateTables(ctx context.Context, db *sql.DB) error {
	for _, step := range schemaSteps {
		if _, err := db.ExecContext(ctx, step.query); err != nil {
			return fmt.Errorf("failed to create %s: %w", step.name, err)
		}
		log.Debug().Str("step", step.name).Msg("schema step applied")
	}

	log.Info().Int("steps", len(schemaSteps)).Msg("database schema is up to date")
	return nil
}
