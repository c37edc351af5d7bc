package middleware

import (
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
)

const (
	UserIDHeader = "X-User-Id"
	UserIDKey    = "user_id"
)

// RequireOwner reads the owner set by the gateway and stores it under UserIDKey.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			abort(c, appErrors.ErrUnauthorized)
			return
		}
		id, err := pkg.ParseULID(raw)
		if err != nil {
			abort(c, appErrors.ErrUnauthorized.WithError(err))
			return
		}

		c.Set(UserIDKey, id.String())
		c.Next()
	}
}

func abort(c *gin.Context, appErr *appErrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}
