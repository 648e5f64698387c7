package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/service"
	"github.com/rs/zerolog"
)

// TopicHandler handles topic endpoints
type TopicHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(services *service.Services, log zerolog.Logger) *TopicHandler {
	return &TopicHandler{
		services: services,
		log:      log.With().Str("handler", "topic").Logger(),
	}
}

// ListTopics handles GET /api/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.services.Topic.ListTopics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}
