package models

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// MinFirstReleaseYear is the earliest accepted first release year.
const MinFirstReleaseYear = 1900

// Artist is a catalog entry. UserID links the artist to the account that
// manages it; artists created standalone (e.g. CSV import) have none.
type Artist struct {
	ID                 int       `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	DOB                *Date     `json:"dob" db:"dob"`
	Gender             *Gender   `json:"gender" db:"gender"`
	Address            *string   `json:"address" db:"address"`
	FirstReleaseYear   *int      `json:"first_release_year" db:"first_release_year"`
	NoOfAlbumsReleased int       `json:"no_of_albums_released" db:"no_of_albums_released"`
	Bio                *string   `json:"bio" db:"bio"`
	UserID             *int      `json:"user_id" db:"user_id"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}
