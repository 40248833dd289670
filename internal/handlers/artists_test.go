package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/models"
)

func setupArtistRouter(api *API) *gin.Engine {
	router := gin.New()
	manager := router.Group("/api/artists", withTestIdentity(1, models.RoleArtistManager))
	manager.GET("", api.ListArtists)
	manager.POST("", api.CreateArtist)
	manager.PUT("/:id", api.UpdateArtist)
	manager.DELETE("/:id", api.DeleteArtist)
	manager.GET("/export-csv", api.ExportArtistsCSV)
	manager.POST("/import-csv", api.ImportArtistsCSV)

	router.GET("/api/me/artist", withTestIdentity(7, models.RoleArtist), api.MyArtist)
	return router
}

func TestListArtistsClampsPagination(t *testing.T) {
	api, mock := setupMockAPI(t)

	mock.ExpectQuery(`FROM artists ORDER BY id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows(artistCols).
			AddRow(1, "Nina", nil, nil, nil, nil, 0, nil, nil, time.Now()))

	w := doJSON(setupArtistRouter(api), http.MethodGet, "/api/artists?limit=500&offset=-4", "")

	expectHTTP200(t, w.Code)
	payload := decodeBody(t, w)
	if payload["limit"] != float64(100) || payload["offset"] != float64(0) {
		t.Fatalf("expected clamped page, got limit=%v offset=%v", payload["limit"], payload["offset"])
	}
	artists, _ := payload["artists"].([]any)
	if len(artists) != 1 {
		t.Fatalf("expected one artist, got %v", payload["artists"])
	}
	first, _ := artists[0].(map[string]any)
	if first["dob"] != nil || first["gender"] != nil {
		t.Fatalf("expected null optional fields, got %v", first)
	}
	mustMeetExpectations(t, mock)
}

func TestCreateArtistValidation(t *testing.T) {
	api, mock := setupMockAPI(t)

	w := doJSON(setupArtistRouter(api), http.MethodPost, "/api/artists", `{"name":"X","gender":"robot"}`)

	mustError(t, w, http.StatusBadRequest, "Gender must be one of: male, female, other")
	mustMeetExpectations(t, mock)
}

func TestCreateArtistStoresNullsForOmittedFields(t *testing.T) {
	api, mock := setupMockAPI(t)

	mock.ExpectQuery(`INSERT INTO artists`).
		WithArgs("Nina", nil, "female", nil, 1999, 3, nil, nil).
		WillReturnRows(sqlmock.NewRows(artistCols).
			AddRow(4, "Nina", nil, "female", nil, 1999, 3, nil, nil, time.Now()))

	w := doJSON(setupArtistRouter(api), http.MethodPost, "/api/artists",
		`{"name":"Nina","gender":"female","first_release_year":1999,"no_of_albums_released":3}`)

	mustStatus(t, w.Code, http.StatusCreated)
	if got := decodeBody(t, w)["id"]; got != float64(4) {
		t.Fatalf("expected id 4, got %v", got)
	}
	mustMeetExpectations(t, mock)
}

func TestUpdateArtistRejectsEmptyBody(t *testing.T) {
	api, mock := setupMockAPI(t)

	w := doJSON(setupArtistRouter(api), http.MethodPut, "/api/artists/5", `{}`)

	mustError(t, w, http.StatusBadRequest, "At least one field must be provided for update")
	mustMeetExpectations(t, mock)
}

func TestUpdateArtistRejectsNonNumericID(t *testing.T) {
	api, _ := setupMockAPI(t)

	w := doJSON(setupArtistRouter(api), http.MethodPut, "/api/artists/abc", `{"name":"X"}`)

	mustError(t, w, http.StatusBadRequest, "Invalid artist ID")
}

func TestDeleteArtist(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		api, mock := setupMockAPI(t)
		mock.ExpectExec(`DELETE FROM artists WHERE id = \$1`).
			WithArgs(9999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		w := doJSON(setupArtistRouter(api), http.MethodDelete, "/api/artists/9999", "")

		mustError(t, w, http.StatusNotFound, "Artist not found")
		mustMeetExpectations(t, mock)
	})

	t.Run("deleted", func(t *testing.T) {
		api, mock := setupMockAPI(t)
		mock.ExpectExec(`DELETE FROM artists WHERE id = \$1`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := doJSON(setupArtistRouter(api), http.MethodDelete, "/api/artists/3", "")

		expectHTTP200(t, w.Code)
		if got := decodeBody(t, w)["message"]; got != "Artist deleted successfully" {
			t.Fatalf("unexpected message %v", got)
		}
		mustMeetExpectations(t, mock)
	})
}

func TestMyArtistWithoutProfile(t *testing.T) {
	api, mock := setupMockAPI(t)
	mock.ExpectQuery(`FROM artists WHERE user_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(artistCols))

	w := doJSON(setupArtistRouter(api), http.MethodGet, "/api/me/artist", "")

	mustError(t, w, http.StatusNotFound, "Artist profile not found")
	mustMeetExpectations(t, mock)
}

func TestExportArtistsCSV(t *testing.T) {
	api, mock := setupMockAPI(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM artists ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows(artistCols).
			AddRow(1, "Nina", nil, "female", nil, 1999, 3, nil, nil, created))

	w := doJSON(setupArtistRouter(api), http.MethodGet, "/api/artists/export-csv", "")

	expectHTTP200(t, w.Code)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv content type, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".csv") {
		t.Fatalf("expected csv attachment, got %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "id,name,dob") {
		t.Fatalf("unexpected csv body %q", w.Body.String())
	}
	mustMeetExpectations(t, mock)
}

func multipartCSV(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/artists/import-csv", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportArtistsCSV(t *testing.T) {
	api, mock := setupMockAPI(t)
	content := "name,dob,gender,address,first_release_year,no_of_albums_released\n" +
		"Nina,1990-01-02,female,Oslo,2010,2\n"

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO artists`).
		WillReturnRows(sqlmock.NewRows(artistCols).
			AddRow(1, "Nina", "1990-01-02", "female", "Oslo", 2010, 2, nil, nil, time.Now()))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	setupArtistRouter(api).ServeHTTP(w, multipartCSV(t, "file", "artists.csv", content))

	expectHTTP200(t, w.Code)
	payload := decodeBody(t, w)
	if payload["success"] != true || payload["imported"] != float64(1) || payload["failed"] != float64(0) {
		t.Fatalf("unexpected import result %v", payload)
	}
	mustMeetExpectations(t, mock)
}

func TestImportArtistsCSVRequiresFileField(t *testing.T) {
	api, mock := setupMockAPI(t)

	w := httptest.NewRecorder()
	setupArtistRouter(api).ServeHTTP(w, multipartCSV(t, "upload", "artists.csv", "name\n"))

	mustError(t, w, http.StatusBadRequest, "CSV file is required in form field \"file\"")
	mustMeetExpectations(t, mock)
}

func TestImportArtistsCSVRejectsBinary(t *testing.T) {
	api, mock := setupMockAPI(t)
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

	w := httptest.NewRecorder()
	setupArtistRouter(api).ServeHTTP(w, multipartCSV(t, "file", "artists.csv", png))

	mustError(t, w, http.StatusBadRequest, "Only CSV files are accepted")
	mustMeetExpectations(t, mock)
}
