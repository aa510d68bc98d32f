package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "budgetdash/internal/errors"
)

// APIKeyHeader carries the shared secret checked by APIKeyAuth.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth guards a route group with a static API key sent in the
// X-API-Key header. An empty configured key disables the check, for local
// deployments sitting behind an authenticating proxy.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthorized.Code,
					"message": apperrors.ErrUnauthorized.Message,
				},
			})
			return
		}
		c.Next()
	}
}
