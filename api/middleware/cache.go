package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl sets a long-lived Cache-Control header for static game
// assets so returning players do not re-download them.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d", maxAgeSeconds)
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
