// Package middleware provides the HTTP cross-cutting layers: session
// authentication, request logging, and metrics.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/0PeterAdel/Money-Management/internal/auth"
)

// userIDKey is the gin context key the authenticated user ID is stored under.
const userIDKey = "auth_user_id"

// Auth validates the Bearer token and stores the caller's user ID in the
// request context. Requests without a valid token are rejected.
func Auth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		var token string
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user ID set by Auth, or "" before auth.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
