package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"rhythm-registry/internal/apperror"
	"rhythm-registry/internal/database"
	"rhythm-registry/internal/models"
	"rhythm-registry/internal/store"
	"rhythm-registry/internal/utils"
	"rhythm-registry/internal/validators"
)

const (
	msgBadCredentials  = "Invalid email or password"
	msgAccountInactive = "Account is inactive"
)

type AuthService struct {
	db    *sql.DB
	users *UserService
}

func NewAuthService(db *sql.DB, users *UserService) *AuthService {
	return &AuthService{db: db, users: users}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account through the same path as administrative
// creation, so artist accounts get their linked artist row.
func (s *AuthService) Register(ctx context.Context, req validators.CreateUserRequest) (models.User, error) {
	return s.users.Create(ctx, req)
}

var (
	decoyOnce sync.Once
	decoyHash string
)

// decoy returns a hash to compare against when the email is unknown, so both
// failure paths cost one bcrypt comparison.
func decoy() string {
	decoyOnce.Do(func() {
		decoyHash, _ = utils.HashPassword("decoy-password-0")
	})
	return decoyHash
}

// Login checks credentials and issues a one-hour token. Unknown email and
// wrong password fail with the same message.
func (s *AuthService) Login(ctx context.Context, req validators.LoginRequest) (LoginResult, error) {
	var user models.User
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		user, err = store.FindUserByEmail(ctx, q, req.Email)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		utils.CheckPasswordHash(req.Password, decoy())
		return LoginResult{}, apperror.Unauthorized(msgBadCredentials)
	}
	if err != nil {
		return LoginResult{}, apperror.Wrap(err, "", "")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return LoginResult{}, apperror.Unauthorized(msgBadCredentials)
	}
	if !user.IsActive {
		return LoginResult{}, apperror.Unauthorized(msgAccountInactive)
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, apperror.Internal("Failed to generate token", err)
	}
	return LoginResult{Token: token, User: user}, nil
}
