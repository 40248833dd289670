// Package validators checks decoded JSON request bodies and turns them into
// typed requests. Every failure is an apperror of kind Validation whose
// message is returned to the client unchanged.
package validators

import (
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"rhythm-registry/internal/apperror"
	"rhythm-registry/internal/models"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

const (
	emailRules    = "required,email,max=254"
	passwordRules = "min=8,containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ,containsany=abcdefghijklmnopqrstuvwxyz,containsany=0123456789"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const (
	msgEmptyUpdate   = "At least one field must be provided for update"
	msgWeakPassword  = "Password must be at least 8 characters long and contain uppercase, lowercase, and numeric characters"
	msgLongPassword  = "Password must not exceed 72 bytes"
	msgInvalidEmail  = "Invalid email format"
	msgInvalidRole   = "Invalid role"
	msgInvalidGender = "Gender must be one of: male, female, other"
)

// Body is a decoded JSON object.
type Body = map[string]any

func fail(message string) error {
	return apperror.Validation(message)
}

// nonEmptyString reports the trimmed value of key when it is a string with
// at least one non-space character.
func nonEmptyString(body Body, key string) (string, bool) {
	raw, ok := body[key].(string)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(raw)
	return trimmed, trimmed != ""
}

func present(body Body, key string) bool {
	_, ok := body[key]
	return ok
}

// isNull reports whether key was sent as an explicit JSON null.
func isNull(body Body, key string) bool {
	value, ok := body[key]
	return ok && value == nil
}

// integer accepts JSON numbers without a fractional part.
func integer(body Body, key string) (int, bool) {
	switch v := body[key].(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func validEmail(email string) bool {
	return validate.Var(email, emailRules) == nil
}

func strongPassword(password string) bool {
	return validate.Var(password, passwordRules) == nil
}

func role(body Body, key string) (models.Role, bool) {
	raw, ok := body[key].(string)
	if !ok {
		return "", false
	}
	r := models.Role(raw)
	return r, r.Valid()
}

func date(body Body, key string) (models.Date, bool) {
	raw, ok := body[key].(string)
	if !ok {
		return models.Date{}, false
	}
	parsed, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, false
	}
	return parsed, true
}
