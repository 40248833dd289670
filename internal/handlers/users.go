package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/validators"
)

func (a *API) ListUsers(c *gin.Context) {
	page := pageFromQuery(c)

	users, err := a.users.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":  users,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

func (a *API) CreateUser(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, err := validators.CreateUser(body)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := a.users.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (a *API) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, err := validators.UpdateUser(body)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := a.users.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *API) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	if err := a.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
