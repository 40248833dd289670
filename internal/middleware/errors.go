package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rhythm-registry/internal/apperror"
)

// AbortWithError writes err as {"error": message} with the status of its
// kind. Internal errors are logged and replaced by a generic message.
func AbortWithError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.KindInternal {
		log.Error().
			Err(err).
			Str("request_id", RequestIDFromContext(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.AbortWithStatusJSON(apperror.KindInternal.HTTPStatus(), gin.H{"error": "Internal server error"})
		return
	}

	c.AbortWithStatusJSON(appErr.Kind.HTTPStatus(), gin.H{"error": appErr.Message})
}
