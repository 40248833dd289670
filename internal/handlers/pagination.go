package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/services"
)

// parseListQueryParams reads ?limit and ?offset. Unparseable or
// non-positive limits fall back to the default; limits above the maximum are
// clamped. Negative or unparseable offsets become 0.
func parseListQueryParams(rawLimit string, rawOffset string) services.Page {
	limit := services.DefaultPageLimit
	if parsedLimit, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && parsedLimit > 0 {
		limit = parsedLimit
	}

	offset := 0
	if parsedOffset, err := strconv.Atoi(strings.TrimSpace(rawOffset)); err == nil && parsedOffset >= 0 {
		offset = parsedOffset
	}

	return services.NewPage(limit, offset)
}

func pageFromQuery(c *gin.Context) services.Page {
	return parseListQueryParams(c.Query("limit"), c.Query("offset"))
}
