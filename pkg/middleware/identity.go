package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireIdentity aborts with 401 unless the trusted identity header is set.
func RequireIdentity(identityHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(identityHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// Identity returns the caller identity stored by RequireIdentity.
func Identity(c *gin.Context) string {
	return c.GetString(identityKey)
}
