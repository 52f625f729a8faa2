package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/reddit-lite/internal/middleware"
	"github.com/emilythestrangee/reddit-lite/internal/session"
)

type users map[string]bool

func (u users) UserExists(_ context.Context, name string) (bool, error) { return u[name], nil }

func newRouter(tokens *session.Tokens) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	dir := users{"alice": true}
	whoami := func(c *gin.Context) {
		name, ok := middleware.Username(c)
		c.JSON(http.StatusOK, gin.H{"username": name, "ok": ok})
	}
	r.GET("/private", middleware.AuthMiddleware(tokens, dir), whoami)
	r.GET("/public", middleware.OptionalAuth(tokens, dir), whoami)
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := session.NewTokens([]byte("secret"), time.Hour)
	r := newRouter(tokens)

	alice, err := tokens.Issue("alice")
	require.NoError(t, err)
	ghost, err := tokens.Issue("ghost")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, "/private", "Bearer "+alice).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/private", alice).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/private", "Bearer junk").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/private", "Bearer "+ghost).Code)
}

func TestOptionalAuth(t *testing.T) {
	tokens := session.NewTokens([]byte("secret"), time.Hour)
	r := newRouter(tokens)
	alice, err := tokens.Issue("alice")
	require.NoError(t, err)

	w := do(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"","ok":false}`, w.Body.String())

	w = do(r, "/public", "Bearer "+alice)
	assert.JSONEq(t, `{"username":"alice","ok":true}`, w.Body.String())
}
