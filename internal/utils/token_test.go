package utils

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"rhythm-registry/internal/models"
)

const testJWTSecret = "rhythm_registry_test_jwt_secret_0123456789"

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_SECRET", testJWTSecret)
	SetBcryptCost(4)
	os.Exit(m.Run())
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, models.RoleArtistManager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != models.RoleArtistManager {
		t.Fatalf("expected role artist_manager, got %s", claims.Role)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected one hour lifetime, got %s", got)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := generateTokenAt(7, models.RoleArtist, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("generateTokenAt: %v", err)
	}

	if _, err := ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	claims := Claims{
		UserID: 7,
		Role:   models.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    jwtIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("another_secret_that_is_long_enough_1234"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	if _, err := ValidateToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not.a.token"} {
		if _, err := ValidateToken(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestGenerateTokenRejectsUnknownRole(t *testing.T) {
	if _, err := GenerateToken(1, models.Role("guest")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("Passw0rd!", hash) {
		t.Fatalf("expected password to match its hash")
	}
	if CheckPasswordHash("passw0rd!", hash) {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestSetBcryptCostIgnoresOutOfRange(t *testing.T) {
	SetBcryptCost(bcrypt.MaxCost + 1)

	hash, err := HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost: %v", err)
	}
	if cost != 4 {
		t.Fatalf("expected cost 4 to survive an out-of-range update, got %d", cost)
	}
}

func TestSetJWTSecretDuringFirstLookup(t *testing.T) {
	jwtEnvOnce = sync.Once{}
	t.Cleanup(func() {
		if err := SetJWTSecret(testJWTSecret); err != nil {
			t.Errorf("restore secret: %v", err)
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = SetJWTSecret(testJWTSecret)
			}()
			go func() {
				defer wg.Done()
				_, _ = GenerateToken(1, models.RoleArtist)
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("SetJWTSecret and the first token lookup deadlocked")
	}
}
