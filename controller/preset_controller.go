package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seanazu/value-hunter/customerrors"
	"github.com/seanazu/value-hunter/model"
	"github.com/seanazu/value-hunter/service"
)

type PresetController struct {
	presetService service.PresetService
}

func NewPresetController(ps service.PresetService) *PresetController {
	return &PresetController{
		presetService: ps,
	}
}

// RegisterRoutes maps endpoints to the /api/presets group
func (ctrl *PresetController) RegisterRoutes(router *gin.RouterGroup) {
	presetGroup := router.Group("/presets")
	{
		presetGroup.GET("", ctrl.getAllPresets)
		presetGroup.GET("/all", ctrl.getAllPresetsAdmin)
		presetGroup.POST("", ctrl.createPreset)
		presetGroup.PUT("", ctrl.updatePreset)
		presetGroup.DELETE("/:id", ctrl.deletePreset)
		presetGroup.POST("/reload", ctrl.reloadAllPresets)
	}
}

func (ctrl *PresetController) getAllPresets(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.presetService.GetAllPresets())
}

func (ctrl *PresetController) getAllPresetsAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.presetService.GetAllPresetsAdmin())
}

func (ctrl *PresetController) createPreset(c *gin.Context) {
	var request model.PresetDto
	// ShouldBindJSON validates against `binding:"required"` tags in the struct
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := ctrl.presetService.CreatePreset(c.Request.Context(), request)
	if err != nil {
		c.JSON(presetErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctrl *PresetController) updatePreset(c *gin.Context) {
	var request model.PresetDto
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := ctrl.presetService.UpdatePreset(c.Request.Context(), request)
	if err != nil {
		c.JSON(presetErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *PresetController) deletePreset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}

	err := ctrl.presetService.DeletePreset(c.Request.Context(), id)
	if err != nil {
		c.JSON(presetErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *PresetController) reloadAllPresets(c *gin.Context) {
	err := ctrl.presetService.ReloadAllPresets(c.Request.Context())
	if err != nil {
		c.JSON(presetErrorStatus(err), NewErrorResponse("Error Loading Presets: "+err.Error()).Body)
		return
	}
	c.JSON(http.StatusOK, NewResponse(nil, "Presets Loaded Successfully").Body)
}

func presetErrorStatus(err error) int {
	switch {
	case errors.Is(err, customerrors.ErrPresetsDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, customerrors.ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, customerrors.ErrInvalidPreset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
