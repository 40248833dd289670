package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPingAndStatus(t *testing.T) {
	api, _ := setupMockAPI(t)
	router := gin.New()
	router.GET("/api/ping", api.Ping)
	router.GET("/api/status", api.Status)

	w := doJSON(router, http.MethodGet, "/api/ping", "")
	expectHTTP200(t, w.Code)
	if got := decodeBody(t, w)["message"]; got != "pong" {
		t.Fatalf("expected pong, got %v", got)
	}

	w = doJSON(router, http.MethodGet, "/api/status", "")
	expectHTTP200(t, w.Code)
	payload := decodeBody(t, w)
	if payload["status"] != "operational" || payload["version"] != Version {
		t.Fatalf("unexpected status payload %v", payload)
	}
}

func TestParseListQueryParams(t *testing.T) {
	cases := []struct {
		limit, offset     string
		wantLimit, wantOf int
	}{
		{"", "", 50, 0},
		{"10", "20", 10, 20},
		{"500", "0", 100, 0},
		{"0", "-1", 50, 0},
		{"abc", "xyz", 50, 0},
		{" 25 ", " 5 ", 25, 5},
	}
	for _, tc := range cases {
		page := parseListQueryParams(tc.limit, tc.offset)
		if page.Limit != tc.wantLimit || page.Offset != tc.wantOf {
			t.Fatalf("parseListQueryParams(%q, %q) = %+v, want limit=%d offset=%d",
				tc.limit, tc.offset, page, tc.wantLimit, tc.wantOf)
		}
	}
}
