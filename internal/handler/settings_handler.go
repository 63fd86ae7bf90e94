package handler

import (
	"net/http"

	"purchasing-backend/internal/middleware"
	"purchasing-backend/internal/model"
	"purchasing-backend/internal/service"
	"purchasing-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/api/settings")
	{
		settings.GET("", middleware.RequirePermission("settings.read"), h.GetSettings)
		settings.PUT("", middleware.RequirePermission("settings.write"), h.SaveSettings)
	}
}

// GetSettings returns the process-wide request configuration
// @Summary      Get request settings
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.RequestSettings}
// @Router       /api/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// SaveSettings persists the request configuration
// @Summary      Save request settings
// @Description  Persists prefix, counter, warehouse-reception flag and vocabularies. The counter never decreases.
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      model.RequestSettings  true  "Settings"
// @Success      200      {object}  response.Response{data=model.RequestSettings}
// @Failure      400      {object}  response.Response
// @Router       /api/settings [put]
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var settings model.RequestSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	saved, err := h.settingsService.SaveSettings(c.Request.Context(), settings)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, saved))
}
