package services

import (
	"context"
	"database/sql"

	"rhythm-registry/internal/apperror"
	"rhythm-registry/internal/database"
	"rhythm-registry/internal/models"
	"rhythm-registry/internal/store"
	"rhythm-registry/internal/validators"
)

const (
	msgArtistNotFound  = "Artist not found"
	msgProfileNotFound = "Artist profile not found"
)

type ArtistService struct {
	db *sql.DB
}

func NewArtistService(db *sql.DB) *ArtistService {
	return &ArtistService{db: db}
}

func (s *ArtistService) List(ctx context.Context, page Page) ([]models.Artist, error) {
	var artists []models.Artist
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		artists, err = store.ListArtists(ctx, q, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, apperror.Wrap(err, msgArtistNotFound, "")
	}
	return artists, nil
}

// Mine resolves the artist linked to userID.
func (s *ArtistService) Mine(ctx context.Context, userID int) (models.Artist, error) {
	var artist models.Artist
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		artist, err = store.FindArtistByUserID(ctx, q, userID)
		return err
	})
	if err != nil {
		return models.Artist{}, apperror.Wrap(err, msgProfileNotFound, "")
	}
	return artist, nil
}

func newArtistRow(req validators.ArtistRequest) store.NewArtist {
	return store.NewArtist{
		Name:               req.Name,
		DOB:                req.DOB,
		Gender:             req.Gender,
		Address:            req.Address,
		FirstReleaseYear:   req.FirstReleaseYear,
		NoOfAlbumsReleased: req.NoOfAlbumsReleased,
		Bio:                req.Bio,
	}
}

// Create inserts a standalone artist with no linked user.
func (s *ArtistService) Create(ctx context.Context, req validators.ArtistRequest) (models.Artist, error) {
	var artist models.Artist
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		artist, err = store.InsertArtist(ctx, q, newArtistRow(req))
		return err
	})
	if err != nil {
		return models.Artist{}, apperror.Wrap(err, msgArtistNotFound, "")
	}
	return artist, nil
}

func (s *ArtistService) Update(ctx context.Context, id int, req validators.UpdateArtistRequest) (models.Artist, error) {
	var patch store.Patch
	setOptional(&patch, "name", req.Name)
	setOptional(&patch, "dob", req.DOB)
	setOptional(&patch, "gender", req.Gender)
	setOptional(&patch, "address", req.Address)
	setOptional(&patch, "first_release_year", req.FirstReleaseYear)
	setOptional(&patch, "no_of_albums_released", req.NoOfAlbumsReleased)
	setOptional(&patch, "bio", req.Bio)
	if patch.Empty() {
		return models.Artist{}, apperror.Validation("At least one field must be provided for update")
	}

	var artist models.Artist
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		artist, err = store.UpdateArtist(ctx, q, id, patch)
		return err
	})
	if err != nil {
		return models.Artist{}, apperror.Wrap(err, msgArtistNotFound, "")
	}
	return artist, nil
}

func (s *ArtistService) Delete(ctx context.Context, id int) error {
	var deleted bool
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		deleted, err = store.DeleteArtist(ctx, q, id)
		return err
	})
	if err != nil {
		return apperror.Wrap(err, msgArtistNotFound, "")
	}
	if !deleted {
		return apperror.NotFound(msgArtistNotFound)
	}
	return nil
}
