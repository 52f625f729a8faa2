package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/session"
)

// UsernameKey is the gin context key holding the authenticated username.
const UsernameKey = "username"

// Directory confirms a token's user still exists in this process.
type Directory interface {
	UserExists(ctx context.Context, username string) (bool, error)
}

// AuthMiddleware requires a valid Bearer token for an existing user.
func AuthMiddleware(tokens *session.Tokens, users Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, status, msg := authenticate(c, tokens, users)
		if status != 0 {
			c.AbortWithStatusJSON(status, gin.H{"error": msg, "kind": "NotLoggedIn"})
			return
		}
		c.Set(UsernameKey, username)
		c.Next()
	}
}

// OptionalAuth records the user when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(tokens *session.Tokens, users Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username, status, _ := authenticate(c, tokens, users); status == 0 {
			c.Set(UsernameKey, username)
		}
		c.Next()
	}
}

// Username returns the authenticated username, if any.
func Username(c *gin.Context) (string, bool) {
	raw, exists := c.Get(UsernameKey)
	if !exists {
		return "", false
	}
	username, ok := raw.(string)
	return username, ok && username != ""
}

func authenticate(c *gin.Context, tokens *session.Tokens, users Directory) (string, int, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", http.StatusUnauthorized, "Authorization header required"
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return "", http.StatusUnauthorized, "Invalid authorization header format"
	}

	username, err := tokens.Parse(raw)
	if err != nil {
		return "", http.StatusUnauthorized, "Invalid or expired token"
	}

	exists, err := users.UserExists(c.Request.Context(), username)
	if err != nil {
		return "", http.StatusInternalServerError, "Failed to verify user"
	}
	if !exists {
		return "", http.StatusUnauthorized, "User no longer exists"
	}
	return username, 0, ""
}
