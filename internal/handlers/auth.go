package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/commands"
	"github.com/emilythestrangee/reddit-lite/internal/middleware"
	"github.com/emilythestrangee/reddit-lite/internal/models"
	"github.com/emilythestrangee/reddit-lite/internal/session"
)

type AuthHandler struct {
	base
	tokens *session.Tokens
}

// Register creates an account and returns a token for it
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "Username is required")
		return
	}

	user, err := h.commandsFor(c).Register(c.Request.Context(), input.Username)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Token:   token,
		User:    *user,
		Message: "Account created for " + user.Username,
	})
}

// Login issues a token for an existing user
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "Username is required")
		return
	}

	ctx := c.Request.Context()
	cmds := h.commandsFor(c)
	if err := cmds.Login(ctx, input.Username); err != nil {
		h.fail(c, err)
		return
	}

	user, err := cmds.Store().GetUser(ctx, input.Username)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token:   token,
		User:    *user,
		Message: "Logged in as " + user.Username,
	})
}

// GetMe returns the authenticated user (PROTECTED)
func (h *AuthHandler) GetMe(c *gin.Context) {
	username, ok := middleware.Username(c)
	if !ok {
		h.fail(c, commands.ErrNotLoggedIn)
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
