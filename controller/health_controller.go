package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seanazu/value-hunter/service"
)

type HealthController struct {
	sessionService service.SessionService
	presetService  service.PresetService
}

func NewHealthController(ss service.SessionService, ps service.PresetService) *HealthController {
	return &HealthController{
		sessionService: ss,
		presetService:  ps,
	}
}

// RegisterRoutes sets up the health check endpoint under the /api group
func (ctrl *HealthController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", ctrl.healthCheck)
	router.HEAD("/health", ctrl.healthHead)
}

func (ctrl *HealthController) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "UP",
		"sessions": ctrl.sessionService.Count(),
		"presets":  ctrl.presetService.Enabled(),
	})
}

func (ctrl *HealthController) healthHead(c *gin.Context) {
	c.Status(http.StatusOK)
}
