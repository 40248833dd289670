package models

import (
	"time"
)

// Genre is the closed set of song genres.
type Genre string

const (
	GenreRnB     Genre = "rnb"
	GenreCountry Genre = "country"
	GenreClassic Genre = "classic"
	GenreRock    Genre = "rock"
	GenreJazz    Genre = "jazz"
)

var Genres = []Genre{GenreRnB, GenreCountry, GenreClassic, GenreRock, GenreJazz}

func (g Genre) Valid() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

type Song struct {
	ID          int       `json:"id" db:"id"`
	ArtistID    int       `json:"artist_id" db:"artist_id"`
	Title       string    `json:"title" db:"title"`
	AlbumName   string    `json:"album_name" db:"album_name"`
	Genre       Genre     `json:"genre" db:"genre"`
	ReleaseDate Date      `json:"release_date" db:"release_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
