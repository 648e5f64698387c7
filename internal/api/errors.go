package api

import (
	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/apperror"
)

// respondError classifies err and writes the {msg} body for its kind.
// The classified error is attached to the context for logging and metrics;
// causes of internal errors never reach the body.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	_ = c.Error(appErr)
	c.AbortWithStatusJSON(appErr.Status(), gin.H{"msg": appErr.Message})
}

// routeNotFound handles every unmatched path
func routeNotFound(c *gin.Context) {
	respondError(c, apperror.RouteNotFound())
}
