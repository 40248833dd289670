// Package services implements the business rules between handlers and the
// store: existence and uniqueness checks, transactional multi-row writes and
// translation of persistence results into apperror kinds.
package services

import (
	"context"
	"database/sql"
	"errors"

	"rhythm-registry/internal/apperror"
	"rhythm-registry/internal/database"
	"rhythm-registry/internal/models"
	"rhythm-registry/internal/store"
	"rhythm-registry/internal/utils"
	"rhythm-registry/internal/validators"
)

const (
	msgUserNotFound = "User not found"
	msgEmailTaken   = "Email already exists"
)

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context, page Page) ([]models.User, error) {
	var users []models.User
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		users, err = store.ListUsers(ctx, q, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, apperror.Wrap(err, msgUserNotFound, "")
	}
	return users, nil
}

// Create inserts a user and, for the artist role, the linked artist row named
// "first last". Both rows commit together or not at all.
func (s *UserService) Create(ctx context.Context, req validators.CreateUserRequest) (models.User, error) {
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		_, err := store.FindUserByEmail(ctx, q, req.Email)
		return err
	})
	switch {
	case err == nil:
		return models.User{}, apperror.Conflict(msgEmailTaken)
	case !errors.Is(err, sql.ErrNoRows):
		return models.User{}, apperror.Wrap(err, "", msgEmailTaken)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, apperror.Internal("Failed to create user", err)
	}

	var user models.User
	err = database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		user, err = store.InsertUser(ctx, tx, store.NewUser{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         req.Role,
		})
		if err != nil {
			return err
		}

		if user.Role == models.RoleArtist {
			return insertLinkedArtist(ctx, tx, user)
		}
		return nil
	})
	if err != nil {
		return models.User{}, apperror.Wrap(err, msgUserNotFound, msgEmailTaken)
	}
	return user, nil
}

func insertLinkedArtist(ctx context.Context, q database.Querier, user models.User) error {
	userID := user.ID
	_, err := store.InsertArtist(ctx, q, store.NewArtist{
		Name:   user.FullName(),
		UserID: &userID,
	})
	return err
}

// Update patches the user. Promoting a user to the artist role creates the
// linked artist row in the same transaction when none exists yet.
func (s *UserService) Update(ctx context.Context, id int, req validators.UpdateUserRequest) (models.User, error) {
	var patch store.Patch
	setPtr(&patch, "first_name", req.FirstName)
	setPtr(&patch, "last_name", req.LastName)
	setPtr(&patch, "role", req.Role)
	setPtr(&patch, "is_active", req.IsActive)

	var user models.User
	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		user, err = store.UpdateUser(ctx, tx, id, patch)
		if err != nil {
			return err
		}

		if req.Role == nil || *req.Role != models.RoleArtist {
			return nil
		}
		_, err = store.FindArtistByUserID(ctx, tx, user.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return insertLinkedArtist(ctx, tx, user)
		}
		return err
	})
	if errors.Is(err, store.ErrNoFields) {
		return models.User{}, apperror.Validation("At least one field must be provided for update")
	}
	if err != nil {
		return models.User{}, apperror.Wrap(err, msgUserNotFound, "")
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	var deleted bool
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		deleted, err = store.DeleteUser(ctx, q, id)
		return err
	})
	if err != nil {
		return apperror.Wrap(err, msgUserNotFound, "")
	}
	if !deleted {
		return apperror.NotFound(msgUserNotFound)
	}
	return nil
}

func setPtr[T any](p *store.Patch, column string, value *T) {
	if value != nil {
		p.Set(column, *value)
	}
}

func setOptional[T any](p *store.Patch, column string, field validators.Optional[T]) {
	if !field.Set {
		return
	}
	if field.Value == nil {
		p.Set(column, nil)
		return
	}
	p.Set(column, *field.Value)
}
