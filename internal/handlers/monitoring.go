package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (a *API) checkMonitoringToken(c *gin.Context) bool {
	expected := strings.TrimSpace(a.monitoringKey)
	if expected == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Monitoring API is disabled"})
		return false
	}

	provided := strings.TrimSpace(c.GetHeader("X-Monitoring-Key"))
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid monitoring key"})
		return false
	}
	return true
}

// MonitorSnapshot reports uptime, HTTP counters, pool stats and catalog
// totals to operators holding the monitoring key.
func (a *API) MonitorSnapshot(c *gin.Context) {
	if !a.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, a.monitor.Snapshot(c.Request.Context()))
}
