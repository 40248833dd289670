package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/validators"
)

// Register handles POST /api/auth/register.
func (a *API) Register(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, err := validators.Register(body)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := a.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/auth/login.
func (a *API) Login(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, err := validators.Login(body)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := a.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
