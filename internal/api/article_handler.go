package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/service"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services:  services,
		validator: v,
		log:       log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /api/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	q, err := h.validator.ListQuery(queryParam(c, "sort_by"), queryParam(c, "order"), queryParam(c, "topic"))
	if err != nil {
		respondError(c, err)
		return
	}

	articles, err := h.services.Article.ListArticles(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := h.validator.ID(c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	article, err := h.services.Article.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// PatchArticle handles PATCH /api/articles/:article_id
func (h *ArticleHandler) PatchArticle(c *gin.Context) {
	id, err := h.validator.ID(c.Param("article_id"))
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

	delta, err := h.validator.PatchBody(body)
	if err != nil {
		respondError(c, err)
		return
	}

	article, err := h.services.Article.UpdateVotes(c.Request.Context(), id, delta)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// queryParam returns nil when key is absent from the query string
func queryParam(c *gin.Context, key string) *string {
	if value, ok := c.GetQuery(key); ok {
		return &value
	}
	return nil
}
