package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/service"
	"github.com/news-api/internal/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	serviceName     = "news-api"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// HealthChecker reports whether storage is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, health HealthChecker, registry *prometheus.Registry, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.RedirectTrailingSlash = false
	metrics := NewMetrics(registry)

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware(metrics))
	router.Use(corsMiddleware())

	// Handlers
	v := validation.NewValidator()
	topicHandler := NewTopicHandler(services, log)
	userHandler := NewUserHandler(services, log)
	articleHandler := NewArticleHandler(services, v, log)
	commentHandler := NewCommentHandler(services, v, log)

	// Operational endpoints
	router.GET("/health", healthCheck(health))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		collection(api, "", endpoints)
		collection(api, "/topics", topicHandler.ListTopics)

		users := api.Group("/users")
		{
			collection(users, "", userHandler.ListUsers)
			users.GET("/:username", userHandler.GetUser)
		}

		articles := api.Group("/articles")
		{
			collection(articles, "", articleHandler.ListArticles)
			articles.GET("/:article_id", articleHandler.GetArticle)
			articles.PATCH("/:article_id", articleHandler.PatchArticle)
			articles.GET("/:article_id/comments", commentHandler.ListComments)
			articles.POST("/:article_id/comments", commentHandler.PostComment)
		}

		api.DELETE("/comments/:comment_id", commentHandler.DeleteComment)
	}

	router.NoRoute(routeNotFound)

	return router
}

// collection registers a GET route that answers with and without a trailing slash
func collection(g *gin.RouterGroup, path string, handler gin.HandlerFunc) {
	g.GET(path, handler)
	g.GET(path+"/", handler)
}

// healthCheck returns the health status
func healthCheck(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "healthy", http.StatusOK
		if err := health.HealthCheck(ctx); err != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
			_ = c.Error(err)
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"msg": apperror.MsgInternal,
				})
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware propagates or assigns a request id
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		for _, ginErr := range c.Errors {
			var appErr *apperror.Error
			if errors.As(ginErr.Err, &appErr) && appErr.Kind != apperror.KindInternal {
				continue
			}
			event = event.AnErr("cause", ginErr.Err)
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
