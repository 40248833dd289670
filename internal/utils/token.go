package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rhythm-registry/internal/models"
)

const (
	jwtIssuer         = "rhythm-registry-api"
	minJWTSecretBytes = 32
	tokenTTL          = time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the caller identity: the subject is the user id and Role
// drives authorization.
type Claims struct {
	UserID int         `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

var (
	jwtSecretMu  sync.RWMutex
	jwtSecret    []byte
	jwtSecretErr error
	jwtEnvOnce   sync.Once
)

// SetJWTSecret installs the signing secret from configuration.
func SetJWTSecret(raw string) error {
	secret, err := checkSecret(raw)

	// Settle the env fallback first; its Do takes jwtSecretMu itself.
	jwtEnvOnce.Do(func() {})

	jwtSecretMu.Lock()
	defer jwtSecretMu.Unlock()
	jwtSecret, jwtSecretErr = secret, err
	return err
}

func checkSecret(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if len(raw) < minJWTSecretBytes {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretBytes)
	}
	return []byte(raw), nil
}

// getJWTSecret falls back to the JWT_SECRET environment variable when no
// secret was installed explicitly.
func getJWTSecret() ([]byte, error) {
	jwtEnvOnce.Do(func() {
		secret, err := checkSecret(os.Getenv("JWT_SECRET"))
		jwtSecretMu.Lock()
		jwtSecret, jwtSecretErr = secret, err
		jwtSecretMu.Unlock()
	})

	jwtSecretMu.RLock()
	defer jwtSecretMu.RUnlock()
	if jwtSecretErr != nil {
		return nil, jwtSecretErr
	}
	return jwtSecret, nil
}

// GenerateToken issues a signed token for a user that expires after one hour.
func GenerateToken(userID int, role models.Role) (string, error) {
	return generateTokenAt(userID, role, time.Now())
}

func generateTokenAt(userID int, role models.Role, now time.Time) (string, error) {
	if userID <= 0 {
		return "", errors.New("invalid user ID")
	}
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", role)
	}

	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates the JWT token and returns the claims.
func ValidateToken(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(jwtIssuer), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID <= 0 || claims.Subject != strconv.Itoa(claims.UserID) {
		return nil, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}

	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", ErrInvalidToken)
	}

	return claims, nil
}
