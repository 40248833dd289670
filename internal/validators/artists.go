package validators

import (
	"fmt"
	"time"

	"rhythm-registry/internal/models"
)

// now is swapped in tests that pin the current year.
var now = time.Now

// Optional is a field of a partial update. Set reports whether the client
// sent the key at all; a Set field with a nil Value is an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func setTo[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// ArtistRequest is a validated artist creation payload.
type ArtistRequest struct {
	Name               string
	DOB                *models.Date
	Gender             *models.Gender
	Address            *string
	FirstReleaseYear   *int
	NoOfAlbumsReleased int
	Bio                *string
}

type UpdateArtistRequest struct {
	Name               Optional[string]
	DOB                Optional[models.Date]
	Gender             Optional[models.Gender]
	Address            Optional[string]
	FirstReleaseYear   Optional[int]
	NoOfAlbumsReleased Optional[int]
	Bio                Optional[string]
}

func (r UpdateArtistRequest) empty() bool {
	return !r.Name.Set && !r.DOB.Set && !r.Gender.Set && !r.Address.Set &&
		!r.FirstReleaseYear.Set && !r.NoOfAlbumsReleased.Set && !r.Bio.Set
}

func artistDOB(body Body) (models.Date, error) {
	d, ok := date(body, "dob")
	if !ok {
		return d, fail("Date of birth must be in YYYY-MM-DD format")
	}
	return d, nil
}

func artistGender(body Body) (models.Gender, error) {
	raw, _ := body["gender"].(string)
	g := models.Gender(raw)
	if !g.Valid() {
		return g, fail(msgInvalidGender)
	}
	return g, nil
}

func textField(body Body, key, message string) (string, error) {
	v, ok := body[key].(string)
	if !ok {
		return "", fail(message)
	}
	return v, nil
}

func firstReleaseYear(body Body) (int, error) {
	maxYear := now().Year()
	year, ok := integer(body, "first_release_year")
	if !ok || year < models.MinFirstReleaseYear || year > maxYear {
		return 0, fail(fmt.Sprintf("First release year must be an integer between %d and %d", models.MinFirstReleaseYear, maxYear))
	}
	return year, nil
}

func albumCount(body Body) (int, error) {
	count, ok := integer(body, "no_of_albums_released")
	if !ok || count < 0 {
		return 0, fail("Invalid album count")
	}
	return count, nil
}

// CreateArtist requires a name; every other field is optional and may be null.
func CreateArtist(body Body) (ArtistRequest, error) {
	var req ArtistRequest
	var ok bool

	if req.Name, ok = nonEmptyString(body, "name"); !ok {
		return req, fail("Artist name required")
	}

	if present(body, "dob") && !isNull(body, "dob") {
		d, err := artistDOB(body)
		if err != nil {
			return req, err
		}
		req.DOB = &d
	}
	if present(body, "gender") && !isNull(body, "gender") {
		g, err := artistGender(body)
		if err != nil {
			return req, err
		}
		req.Gender = &g
	}
	if present(body, "address") && !isNull(body, "address") {
		a, err := textField(body, "address", "Invalid address")
		if err != nil {
			return req, err
		}
		req.Address = &a
	}
	if present(body, "first_release_year") && !isNull(body, "first_release_year") {
		y, err := firstReleaseYear(body)
		if err != nil {
			return req, err
		}
		req.FirstReleaseYear = &y
	}
	if present(body, "no_of_albums_released") && !isNull(body, "no_of_albums_released") {
		n, err := albumCount(body)
		if err != nil {
			return req, err
		}
		req.NoOfAlbumsReleased = n
	}
	if present(body, "bio") && !isNull(body, "bio") {
		b, err := textField(body, "bio", "Invalid bio")
		if err != nil {
			return req, err
		}
		req.Bio = &b
	}
	return req, nil
}

// UpdateArtist validates a partial artist update. Nullable columns accept an
// explicit null; name and no_of_albums_released do not.
func UpdateArtist(body Body) (UpdateArtistRequest, error) {
	var req UpdateArtistRequest

	if present(body, "name") {
		name, ok := nonEmptyString(body, "name")
		if !ok {
			return req, fail("Artist name required")
		}
		req.Name = setTo(name)
	}

	if present(body, "dob") {
		req.DOB.Set = true
		if !isNull(body, "dob") {
			d, err := artistDOB(body)
			if err != nil {
				return req, err
			}
			req.DOB.Value = &d
		}
	}
	if present(body, "gender") {
		req.Gender.Set = true
		if !isNull(body, "gender") {
			g, err := artistGender(body)
			if err != nil {
				return req, err
			}
			req.Gender.Value = &g
		}
	}
	if present(body, "address") {
		req.Address.Set = true
		if !isNull(body, "address") {
			a, err := textField(body, "address", "Invalid address")
			if err != nil {
				return req, err
			}
			req.Address.Value = &a
		}
	}
	if present(body, "first_release_year") {
		req.FirstReleaseYear.Set = true
		if !isNull(body, "first_release_year") {
			y, err := firstReleaseYear(body)
			if err != nil {
				return req, err
			}
			req.FirstReleaseYear.Value = &y
		}
	}
	if present(body, "no_of_albums_released") {
		n, err := albumCount(body)
		if err != nil {
			return req, err
		}
		req.NoOfAlbumsReleased = setTo(n)
	}
	if present(body, "bio") {
		req.Bio.Set = true
		if !isNull(body, "bio") {
			b, err := textField(body, "bio", "Invalid bio")
			if err != nil {
				return req, err
			}
			req.Bio.Value = &b
		}
	}

	if req.empty() {
		return req, fail(msgEmptyUpdate)
	}
	return req, nil
}
