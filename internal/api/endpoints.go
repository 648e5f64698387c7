package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed endpoints.json
var endpointsDoc []byte

// endpoints serves the static endpoint documentation
func endpoints(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", endpointsDoc)
}
