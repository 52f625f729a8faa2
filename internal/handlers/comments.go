package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/models"
)

type CommentHandler struct {
	base
}

// GetComments returns a post's comments in insertion order
func (h *CommentHandler) GetComments(c *gin.Context) {
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
	c.JSON(http.StatusOK, post.Comments)
}

// CreateComment appends an anonymous comment; no login is needed
func (h *CommentHandler) CreateComment(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "Invalid comment body")
		return
	}

	post, err := h.commandsFor(c).Comment(c.Request.Context(), id, input.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}
