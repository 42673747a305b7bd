package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckHandler struct {
	version     string
	environment string
}

func NewHealthcheckHandler(version, environment string) *HealthcheckHandler {
	return &HealthcheckHandler{version: version, environment: environment}
}

// GET /v1/healthcheck, public; liveness plus build info.
func (h *HealthcheckHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "available",
		"system_info": gin.H{
			"version":     h.version,
			"environment": h.environment,
		},
	})
}
