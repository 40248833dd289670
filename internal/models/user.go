package models

import (
	"time"
)

// Role is the access level carried by a user and embedded in its token.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleArtistManager Role = "artist_manager"
	RoleArtist        Role = "artist"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleSuperAdmin, RoleArtistManager, RoleArtist}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a user in the system
type User struct {
	ID           int       `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// FullName joins first and last name the way linked artist rows are named.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
