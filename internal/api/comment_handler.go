package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/service"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
)

// CommentHandler handles the comment sub-resource
type CommentHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services:  services,
		validator: v,
		log:       log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/articles/:article_id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	articleID, err := h.validator.ID(c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.services.Comment.ListComments(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// PostComment handles POST /api/articles/:article_id/comments
func (h *CommentHandler) PostComment(c *gin.Context) {
	articleID, err := h.validator.ID(c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to read request body")
		respondError(c, apperror.BadRequest(err))
		return
	}

	newComment, err := h.validator.CommentBody(body)
	if err != nil {
		respondError(c, err)
		return
	}

	comment, err := h.services.Comment.AddComment(c.Request.Context(), articleID, newComment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := h.validator.ID(c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.services.Comment.DeleteComment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
