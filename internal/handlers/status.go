package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by /api/status and set at build time.
var Version = "0.1.0"

// Ping is the liveness check.
func (a *API) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "pong"})
}

func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Rhythm Registry API",
		"version": Version,
		"status":  "operational",
	})
}
