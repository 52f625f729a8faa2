package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/models"
	"github.com/emilythestrangee/reddit-lite/internal/view"
)

type CommunityHandler struct {
	base
}

// GetCommunities lists community names in creation order
func (h *CommunityHandler) GetCommunities(c *gin.Context) {
	names, err := h.store.ListCommunities(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// GetHome returns the welcome page; the sidebar is empty for anonymous callers
func (h *CommunityHandler) GetHome(c *gin.Context) {
	h.render(c, view.Home())
}

// GetFeed returns a community's feed page
func (h *CommunityHandler) GetFeed(c *gin.Context) {
	h.render(c, view.FeedOf(c.Param("name")))
}

// CreateCommunity creates a community (PROTECTED)
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	var input models.CreateCommunityRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "Invalid community payload")
		return
	}

	community, err := h.commandsFor(c).CreateCommunity(c.Request.Context(), input.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, community)
}

// ToggleSubscription flips the caller's subscription (PROTECTED)
func (h *CommunityHandler) ToggleSubscription(c *gin.Context) {
	name := c.Param("name")
	subscribed, err := h.commandsFor(c).ToggleSubscription(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}

	label := "Subscribe"
	if subscribed {
		label = "Unsubscribe"
	}
	c.JSON(http.StatusOK, gin.H{
		"community":  name,
		"subscribed": subscribed,
		"label":      label,
	})
}

func (b base) render(c *gin.Context, state view.State) {
	page, err := view.Render(c.Request.Context(), b.store, b.sessionFor(c), state)
	if err != nil {
		b.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
