package services

import (
	"context"
	"database/sql"
	"errors"

	"rhythm-registry/internal/apperror"
	"rhythm-registry/internal/database"
	"rhythm-registry/internal/models"
	"rhythm-registry/internal/store"
	"rhythm-registry/internal/validators"
)

const (
	msgSongNotFound   = "Song not found"
	msgNoProfile      = "No artist profile found for your account"
	msgNotYourProfile = "You can only access your own artist profile"
)

type SongService struct {
	db *sql.DB
}

func NewSongService(db *sql.DB) *SongService {
	return &SongService{db: db}
}

func requireArtist(ctx context.Context, q database.Querier, artistID int) error {
	exists, err := store.ArtistExists(ctx, q, artistID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NotFound(msgArtistNotFound)
	}
	return nil
}

// List returns a page of songs; the parent artist must exist.
func (s *SongService) List(ctx context.Context, artistID int, page Page) ([]models.Song, error) {
	var songs []models.Song
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		if err := requireArtist(ctx, q, artistID); err != nil {
			return err
		}
		var err error
		songs, err = store.ListSongsByArtist(ctx, q, artistID, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, apperror.Wrap(err, msgSongNotFound, "")
	}
	return songs, nil
}

func (s *SongService) Create(ctx context.Context, artistID int, req validators.SongRequest) (models.Song, error) {
	var song models.Song
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		if err := requireArtist(ctx, q, artistID); err != nil {
			return err
		}
		var err error
		song, err = store.InsertSong(ctx, q, store.NewSong{
			ArtistID:    artistID,
			Title:       req.Title,
			AlbumName:   req.AlbumName,
			Genre:       req.Genre,
			ReleaseDate: req.ReleaseDate,
		})
		return err
	})
	if err != nil {
		return models.Song{}, apperror.Wrap(err, msgArtistNotFound, "")
	}
	return song, nil
}

// Update requires the song to exist under artistID before patching it. A
// patch that then matches no row is reported as an internal failure.
func (s *SongService) Update(ctx context.Context, artistID, songID int, req validators.UpdateSongRequest) (models.Song, error) {
	var patch store.Patch
	setPtr(&patch, "title", req.Title)
	setPtr(&patch, "album_name", req.AlbumName)
	setPtr(&patch, "genre", req.Genre)
	setPtr(&patch, "release_date", req.ReleaseDate)
	if patch.Empty() {
		return models.Song{}, apperror.Validation("At least one field must be provided for update")
	}

	var song models.Song
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		if _, err := store.FindSong(ctx, q, songID, artistID); err != nil {
			return apperror.Wrap(err, msgSongNotFound, "")
		}
		var err error
		song, err = store.UpdateSong(ctx, q, songID, artistID, patch)
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.Internal("Failed to update song", err)
		}
		return err
	})
	if err != nil {
		return models.Song{}, apperror.Wrap(err, msgSongNotFound, "")
	}
	return song, nil
}

func (s *SongService) Delete(ctx context.Context, artistID, songID int) error {
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		if _, err := store.FindSong(ctx, q, songID, artistID); err != nil {
			return apperror.Wrap(err, msgSongNotFound, "")
		}
		deleted, err := store.DeleteSong(ctx, q, songID, artistID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.Internal("Failed to delete song", nil)
		}
		return nil
	})
	return apperror.Wrap(err, msgSongNotFound, "")
}

// CheckOwnership resolves the artist linked to userID and requires it to be
// artistID.
func (s *SongService) CheckOwnership(ctx context.Context, userID, artistID int) (models.Artist, error) {
	var artist models.Artist
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		artist, err = store.FindArtistByUserID(ctx, q, userID)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artist{}, apperror.Forbidden(msgNoProfile)
	}
	if err != nil {
		return models.Artist{}, apperror.Wrap(err, "", "")
	}
	if artist.ID != artistID {
		return models.Artist{}, apperror.Forbidden(msgNotYourProfile)
	}
	return artist, nil
}
