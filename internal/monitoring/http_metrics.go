package monitoring

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var activeHTTPRequests atomic.Int64
var totalHTTPRequests atomic.Uint64
var clientErrorResponses atomic.Uint64
var serverErrorResponses atomic.Uint64

// RequestMetricsMiddleware tracks in-flight and completed requests and counts
// 4xx and 5xx responses.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		activeHTTPRequests.Add(1)
		totalHTTPRequests.Add(1)
		defer activeHTTPRequests.Add(-1)

		c.Next()

		switch status := c.Writer.Status(); {
		case status >= 500:
			serverErrorResponses.Add(1)
		case status >= 400:
			clientErrorResponses.Add(1)
		}
	}
}

type httpStats struct {
	Active       int64
	Total        uint64
	ClientErrors uint64
	ServerErrors uint64
}

func getHTTPStats() httpStats {
	return httpStats{
		Active:       activeHTTPRequests.Load(),
		Total:        totalHTTPRequests.Load(),
		ClientErrors: clientErrorResponses.Load(),
		ServerErrors: serverErrorResponses.Load(),
	}
}
