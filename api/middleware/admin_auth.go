package middleware

import (
	"crypto/subtle"
	"net/http"

	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const adminSecretHeader = "X-Admin-Secret"

// AdminAuth guards administrative endpoints with a shared-secret header.
// This check is entirely independent of the score-submission verifier.
// An unconfigured secret rejects every request.
func AdminAuth(secret string, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(adminSecretHeader)
		if secret == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
			logger.Warn("Admin request rejected",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
