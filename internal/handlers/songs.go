package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/validators"
)

func (a *API) ListSongs(c *gin.Context) {
	artistID, ok := pathID(c, "id", "artist")
	if !ok {
		return
	}
	page := pageFromQuery(c)

	songs, err := a.songs.List(c.Request.Context(), artistID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"songs":  songs,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

func (a *API) CreateSong(c *gin.Context) {
	artistID, ok := pathID(c, "id", "artist")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, err := validators.CreateSong(body)
	if err != nil {
		respondError(c, err)
		return
	}

	song, err := a.songs.Create(c.Request.Context(), artistID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, song)
}

func (a *API) UpdateSong(c *gin.Context) {
	artistID, ok := pathID(c, "id", "artist")
	if !ok {
		return
	}
	songID, ok := pathID(c, "songId", "song")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, err := validators.UpdateSong(body)
	if err != nil {
		respondError(c, err)
		return
	}

	song, err := a.songs.Update(c.Request.Context(), artistID, songID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, song)
}

func (a *API) DeleteSong(c *gin.Context) {
	artistID, ok := pathID(c, "id", "artist")
	if !ok {
		return
	}
	songID, ok := pathID(c, "songId", "song")
	if !ok {
		return
	}

	if err := a.songs.Delete(c.Request.Context(), artistID, songID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
