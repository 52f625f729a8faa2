package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/models"
)

type PostHandler struct {
	base
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	post, err := h.store.FindPost(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost posts into the community named in the path (PROTECTED)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "Title is required")
		return
	}

	post, err := h.commandsFor(c).CreatePost(c.Request.Context(), c.Param("name"), input.Title, input.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpvotePost adds the caller's single upvote (PROTECTED)
func (h *PostHandler) UpvotePost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	post, err := h.commandsFor(c).Upvote(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Upvoted",
		"post":    post,
	})
}
