package handlers

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/models"
)

func setupUserRouter(api *API) *gin.Engine {
	router := gin.New()
	admin := router.Group("/api/users", withTestIdentity(1, models.RoleSuperAdmin))
	admin.GET("", api.ListUsers)
	admin.POST("", api.CreateUser)
	admin.PUT("/:id", api.UpdateUser)
	admin.DELETE("/:id", api.DeleteUser)
	return router
}

func TestCreateManagerDoesNotCreateArtist(t *testing.T) {
	api, mock := setupMockAPI(t)
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("m@b.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("M", "B", "m@b.com", sqlmock.AnyArg(), "artist_manager").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, "M", "B", "m@b.com", "hash", "artist_manager", true, time.Now()))
	mock.ExpectCommit()

	w := doJSON(setupUserRouter(api), http.MethodPost, "/api/users",
		`{"first_name":"M","last_name":"B","email":"M@B.com","password":"Passw0rd!","role":"artist_manager"}`)

	mustStatus(t, w.Code, http.StatusCreated)
	if got := decodeBody(t, w)["role"]; got != "artist_manager" {
		t.Fatalf("expected artist_manager, got %v", got)
	}
	mustMeetExpectations(t, mock)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	api, mock := setupMockAPI(t)

	w := doJSON(setupUserRouter(api), http.MethodPost, "/api/users",
		`{"first_name":"M","last_name":"B","email":"m@b.com","password":"Passw0rd!","role":"root"}`)

	mustError(t, w, http.StatusBadRequest, "Invalid role")
	mustMeetExpectations(t, mock)
}

func TestUpdateUserPromotionCreatesArtist(t *testing.T) {
	api, mock := setupMockAPI(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE users SET`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(4, "Ada", "Lee", "ada@b.com", "hash", "artist", true, now))
	mock.ExpectQuery(`FROM artists WHERE user_id = \$1`).
		WithArgs(4).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO artists`).
		WithArgs("Ada Lee", nil, nil, nil, nil, 0, nil, 4).
		WillReturnRows(sqlmock.NewRows(artistCols).AddRow(9, "Ada Lee", nil, nil, nil, nil, 0, nil, 4, now))
	mock.ExpectCommit()

	w := doJSON(setupUserRouter(api), http.MethodPut, "/api/users/4", `{"role":"artist"}`)

	expectHTTP200(t, w.Code)
	mustMeetExpectations(t, mock)
}

func TestUpdateUserRejectsEmptyBody(t *testing.T) {
	api, mock := setupMockAPI(t)

	w := doJSON(setupUserRouter(api), http.MethodPut, "/api/users/4", `{}`)

	mustError(t, w, http.StatusBadRequest, "At least one field must be provided for update")
	mustMeetExpectations(t, mock)
}

func TestDeleteUser(t *testing.T) {
	api, mock := setupMockAPI(t)
	router := setupUserRouter(api)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mustError(t, doJSON(router, http.MethodDelete, "/api/users/404", ""), http.StatusNotFound, "User not found")

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mustStatus(t, doJSON(router, http.MethodDelete, "/api/users/4", "").Code, http.StatusNoContent)

	mustMeetExpectations(t, mock)
}

func TestListUsersHidesPasswordHashes(t *testing.T) {
	api, mock := setupMockAPI(t)
	mock.ExpectQuery(`FROM users ORDER BY id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "A", "B", "a@b.com", "secret-hash", "super_admin", true, time.Now()))

	w := doJSON(setupUserRouter(api), http.MethodGet, "/api/users?limit=10&offset=20", "")

	expectHTTP200(t, w.Code)
	users, _ := decodeBody(t, w)["users"].([]any)
	if len(users) != 1 {
		t.Fatalf("expected one user, got %v", users)
	}
	if _, leaked := users[0].(map[string]any)["password_hash"]; leaked {
		t.Fatalf("password_hash must not be serialized")
	}
	mustMeetExpectations(t, mock)
}
