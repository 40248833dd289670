package utils

import (
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

var bcryptCost atomic.Int32

func init() {
	bcryptCost.Store(int32(bcrypt.DefaultCost))
}

// SetBcryptCost changes the work factor for new hashes. Out-of-range values
// are ignored.
func SetBcryptCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return
	}
	bcryptCost.Store(int32(cost))
}

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), int(bcryptCost.Load()))
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
