package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/commands"
	"github.com/emilythestrangee/reddit-lite/internal/middleware"
	"github.com/emilythestrangee/reddit-lite/internal/session"
	"github.com/emilythestrangee/reddit-lite/internal/store"
)

// Handler combines all handler types
type Handler struct {
	Auth      *AuthHandler
	Community *CommunityHandler
	Post      *PostHandler
	Comment   *CommentHandler
	User      *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(st *store.Store, tokens *session.Tokens, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	b := base{store: st, log: logger}
	return &Handler{
		Auth:      &AuthHandler{base: b, tokens: tokens},
		Community: &CommunityHandler{base: b},
		Post:      &PostHandler{base: b},
		Comment:   &CommentHandler{base: b},
		User:      &UserHandler{base: b},
	}
}

// base is shared by every sub-handler.
type base struct {
	store *store.Store
	log   *slog.Logger
}

// sessionFor returns the request's session: logged in when the auth middleware
// recorded a user, logged out otherwise.
func (b base) sessionFor(c *gin.Context) *session.Session {
	if username, ok := middleware.Username(c); ok {
		return session.As(b.store, username)
	}
	return session.New(b.store)
}

// commandsFor binds the command handlers to the request's session.
func (b base) commandsFor(c *gin.Context) *commands.Handlers {
	return commands.New(b.store, b.sessionFor(c), b.log)
}

// fail writes err as {"error", "kind"} with the status its kind maps to.
func (b base) fail(c *gin.Context, err error) {
	kind := commands.KindOf(err)
	status := kind.HTTPStatus()
	msg := err.Error()
	if status == http.StatusInternalServerError {
		b.log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{"error": msg, "kind": kind.String()})
}

func (b base) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "kind": commands.InvalidInput.String()})
}

var errBadPostID = errors.New("invalid post id")

func postID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errBadPostID
	}
	return id, nil
}
