package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/models"
)

const artistContextKey = "artist"

// OwnershipChecker resolves the artist linked to a user and requires it to
// be the requested one.
type OwnershipChecker interface {
	CheckOwnership(ctx context.Context, userID, artistID int) (models.Artist, error)
}

// RequireArtistOwnership restricts artist-role callers to the artist named by
// the :id path parameter. Other roles pass through unchecked.
func RequireArtistOwnership(checker OwnershipChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := Identity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if role != models.RoleArtist {
			return
		}

		artistID, err := strconv.Atoi(c.Param("id"))
		if err != nil || artistID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid artist ID"})
			return
		}

		artist, err := checker.CheckOwnership(c.Request.Context(), userID, artistID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Set(artistContextKey, artist)
	}
}

// OwnedArtist returns the artist stored by RequireArtistOwnership, if any.
func OwnedArtist(c *gin.Context) (models.Artist, bool) {
	value, ok := c.Get(artistContextKey)
	if !ok {
		return models.Artist{}, false
	}
	artist, ok := value.(models.Artist)
	return artist, ok
}
