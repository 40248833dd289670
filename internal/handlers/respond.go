package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/middleware"
	"rhythm-registry/internal/validators"
)

const maxJSONBodyBytes = 1 << 20

// readBody binds the request body as a JSON object. It writes 400 and
// returns false for anything else.
func readBody(c *gin.Context) (validators.Body, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBodyBytes)

	var body validators.Body
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return nil, false
	}
	return body, true
}

func pathID(c *gin.Context, name, label string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}
