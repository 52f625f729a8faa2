package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/view"
)

type UserHandler struct {
	base
}

// GetUserProfile returns a user's profile page
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	h.render(c, view.ProfileOf(c.Param("username")))
}
