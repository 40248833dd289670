package validators

import (
	"rhythm-registry/internal/models"
)

const (
	msgInvalidGenre = "Genre must be one of: rnb, country, classic, rock, jazz"
	msgReleaseDate  = "Release date is required and must be in YYYY-MM-DD format"
)

type SongRequest struct {
	Title       string
	AlbumName   string
	Genre       models.Genre
	ReleaseDate models.Date
}

type UpdateSongRequest struct {
	Title       *string
	AlbumName   *string
	Genre       *models.Genre
	ReleaseDate *models.Date
}

func genre(body Body) (models.Genre, bool) {
	raw, ok := body["genre"].(string)
	if !ok {
		return "", false
	}
	g := models.Genre(raw)
	return g, g.Valid()
}

func CreateSong(body Body) (SongRequest, error) {
	var req SongRequest
	var ok bool

	if req.Title, ok = nonEmptyString(body, "title"); !ok {
		return req, fail("Title is required")
	}
	if req.AlbumName, ok = nonEmptyString(body, "album_name"); !ok {
		return req, fail("Album name is required")
	}
	if req.Genre, ok = genre(body); !ok {
		return req, fail(msgInvalidGenre)
	}
	if req.ReleaseDate, ok = date(body, "release_date"); !ok {
		return req, fail(msgReleaseDate)
	}
	return req, nil
}

// UpdateSong validates a partial song update; at least one of title,
// album_name, genre or release_date must be sent.
func UpdateSong(body Body) (UpdateSongRequest, error) {
	var req UpdateSongRequest

	if !present(body, "title") && !present(body, "album_name") &&
		!present(body, "genre") && !present(body, "release_date") {
		return req, fail(msgEmptyUpdate)
	}

	if present(body, "title") {
		v, ok := nonEmptyString(body, "title")
		if !ok {
			return req, fail("Invalid title")
		}
		req.Title = &v
	}
	if present(body, "album_name") {
		v, ok := nonEmptyString(body, "album_name")
		if !ok {
			return req, fail("Invalid album name")
		}
		req.AlbumName = &v
	}
	if present(body, "genre") {
		g, ok := genre(body)
		if !ok {
			return req, fail(msgInvalidGenre)
		}
		req.Genre = &g
	}
	if present(body, "release_date") {
		d, ok := date(body, "release_date")
		if !ok {
			return req, fail("Release date must be in YYYY-MM-DD format")
		}
		req.ReleaseDate = &d
	}
	return req, nil
}
