package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/middleware"
	"rhythm-registry/internal/validators"
)

func (a *API) ListArtists(c *gin.Context) {
	page := pageFromQuery(c)

	artists, err := a.artists.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artists": artists,
		"limit":   page.Limit,
		"offset":  page.Offset,
	})
}

// MyArtist returns the artist linked to the authenticated user.
func (a *API) MyArtist(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	artist, err := a.artists.Mine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artist)
}

func (a *API) CreateArtist(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, err := validators.CreateArtist(body)
	if err != nil {
		respondError(c, err)
		return
	}

	artist, err := a.artists.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, artist)
}

func (a *API) UpdateArtist(c *gin.Context) {
	id, ok := pathID(c, "id", "artist")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, err := validators.UpdateArtist(body)
	if err != nil {
		respondError(c, err)
		return
	}

	artist, err := a.artists.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artist)
}

func (a *API) DeleteArtist(c *gin.Context) {
	id, ok := pathID(c, "id", "artist")
	if !ok {
		return
	}

	if err := a.artists.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artist deleted successfully"})
}
