package validators

import (
	"strings"

	"rhythm-registry/internal/models"
)

// CreateUserRequest is a normalized user creation payload. Register produces
// the same shape with the role defaulted.
type CreateUserRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      models.Role
}

type LoginRequest struct {
	Email    string
	Password string
}

// UpdateUserRequest carries only the fields the client sent.
type UpdateUserRequest struct {
	FirstName *string
	LastName  *string
	Role      *models.Role
	IsActive  *bool
}

func validateIdentity(body Body) (CreateUserRequest, error) {
	var req CreateUserRequest
	var ok bool

	if req.FirstName, ok = nonEmptyString(body, "first_name"); !ok {
		return req, fail("First name required")
	}
	if req.LastName, ok = nonEmptyString(body, "last_name"); !ok {
		return req, fail("Last name required")
	}

	email, ok := nonEmptyString(body, "email")
	if !ok || !validEmail(email) {
		return req, fail(msgInvalidEmail)
	}
	req.Email = strings.ToLower(email)

	password, _ := body["password"].(string)
	if len(password) > maxPasswordBytes {
		return req, fail(msgLongPassword)
	}
	if !strongPassword(password) {
		return req, fail(msgWeakPassword)
	}
	req.Password = password
	return req, nil
}

// CreateUser validates an administrative user creation body. Role is required.
func CreateUser(body Body) (CreateUserRequest, error) {
	req, err := validateIdentity(body)
	if err != nil {
		return req, err
	}
	r, ok := role(body, "role")
	if !ok {
		return req, fail(msgInvalidRole)
	}
	req.Role = r
	return req, nil
}

// Register validates a self-registration body. Role is optional and defaults
// to artist.
func Register(body Body) (CreateUserRequest, error) {
	req, err := validateIdentity(body)
	if err != nil {
		return req, err
	}
	req.Role = models.RoleArtist
	if raw, set := body["role"]; set && raw != nil && raw != "" {
		r, ok := role(body, "role")
		if !ok {
			return req, fail(msgInvalidRole)
		}
		req.Role = r
	}
	return req, nil
}

func Login(body Body) (LoginRequest, error) {
	email, ok := nonEmptyString(body, "email")
	if !ok {
		return LoginRequest{}, fail("Email is required to login")
	}
	password, _ := body["password"].(string)
	if password == "" {
		return LoginRequest{}, fail("Password is required to login")
	}
	return LoginRequest{Email: strings.ToLower(email), Password: password}, nil
}

func UpdateUser(body Body) (UpdateUserRequest, error) {
	var req UpdateUserRequest

	if present(body, "first_name") {
		v, ok := nonEmptyString(body, "first_name")
		if !ok {
			return req, fail("Invalid first_name")
		}
		req.FirstName = &v
	}
	if present(body, "last_name") {
		v, ok := nonEmptyString(body, "last_name")
		if !ok {
			return req, fail("Invalid last_name")
		}
		req.LastName = &v
	}
	if present(body, "role") {
		r, ok := role(body, "role")
		if !ok {
			return req, fail(msgInvalidRole)
		}
		req.Role = &r
	}
	if present(body, "is_active") {
		v, ok := body["is_active"].(bool)
		if !ok {
			return req, fail("Invalid is_active")
		}
		req.IsActive = &v
	}

	if req.FirstName == nil && req.LastName == nil && req.Role == nil && req.IsActive == nil {
		return req, fail(msgEmptyUpdate)
	}
	return req, nil
}
