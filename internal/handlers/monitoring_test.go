package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func monitorRequest(api *API, key string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/api/monitor", api.MonitorSnapshot)

	req := httptest.NewRequest(http.MethodGet, "/api/monitor", nil)
	if key != "" {
		req.Header.Set("X-Monitoring-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMonitorSnapshotDisabledWithoutKey(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	w := monitorRequest(New(db, Options{}), testMonitoringKey)

	mustError(t, w, http.StatusServiceUnavailable, "Monitoring API is disabled")
}

func TestMonitorSnapshotRejectsWrongKey(t *testing.T) {
	api, _ := setupMockAPI(t)

	mustError(t, monitorRequest(api, ""), http.StatusUnauthorized, "Invalid monitoring key")
	mustError(t, monitorRequest(api, "nope"), http.StatusUnauthorized, "Invalid monitoring key")
}

func TestMonitorSnapshotReportsTotals(t *testing.T) {
	api, mock := setupMockAPI(t)
	for _, table := range []struct {
		name  string
		total int
	}{{"users", 3}, {"artists", 5}, {"songs", 8}} {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ` + table.name).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(table.total))
	}

	w := monitorRequest(api, testMonitoringKey)

	expectHTTP200(t, w.Code)
	payload := decodeBody(t, w)
	if payload["db_status"] != "ok" {
		t.Fatalf("expected db_status ok, got %v", payload["db_status"])
	}
	if payload["users_total"] != float64(3) || payload["artists_total"] != float64(5) || payload["songs_total"] != float64(8) {
		t.Fatalf("unexpected totals %v", payload)
	}
	mustMeetExpectations(t, mock)
}

func TestMonitorSnapshotSurvivesCountFailure(t *testing.T) {
	api, mock := setupMockAPI(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).WillReturnError(sql.ErrConnDone)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM artists`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM songs`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	w := monitorRequest(api, testMonitoringKey)

	expectHTTP200(t, w.Code)
	payload := decodeBody(t, w)
	if payload["users_total"] != float64(0) || payload["artists_total"] != float64(2) {
		t.Fatalf("unexpected totals %v", payload)
	}
	mustMeetExpectations(t, mock)
}
