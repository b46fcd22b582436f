package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health GET /health — liveness probe.
func Health(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"service": service,
		})
	}
}
