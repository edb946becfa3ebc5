package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
	"github.com/tallybooks/tally_books_app/internal/middleware"
)

// settingsHandler handles HTTP requests for organization settings.
type settingsHandler struct {
	settingsService portssvc.SettingsService
}

func newSettingsHandler(ss portssvc.SettingsService) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// registerSettingsRoutes registers the settings endpoints.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsService) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.updateSettings)
	}
}

func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	settings, err := h.settingsService.GetSettings(c.Request.Context(), organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get settings", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), organizationID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSettingsNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update settings", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}
