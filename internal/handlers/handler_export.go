package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
	"github.com/tallybooks/tally_books_app/internal/middleware"
)

// exportHandler handles HTTP requests for organization backups.
type exportHandler struct {
	exportService portssvc.ExportService
}

func newExportHandler(es portssvc.ExportService) *exportHandler {
	return &exportHandler{exportService: es}
}

// registerExportRoutes registers the export endpoint.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportService) {
	h := newExportHandler(exportService)
	rg.POST("/export", h.exportOrganization)
}

func (h *exportHandler) exportOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	opts := domain.ExportOptions{
		Format:                    domain.ExportFormat(req.Format),
		IncludeDocumentReferences: req.IncludeDocumentReferences,
	}
	if req.DateFrom != nil {
		t, err := time.ParseInLocation(dto.DateLayout, *req.DateFrom, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateFrom, expected YYYY-MM-DD"})
			return
		}
		opts.DateFrom = &t
	}
	if req.DateTo != nil {
		t, err := time.ParseInLocation(dto.DateLayout, *req.DateTo, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateTo, expected YYYY-MM-DD"})
			return
		}
		opts.DateTo = &t
	}

	result, err := h.exportService.Export(c.Request.Context(), organizationID, opts)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSettingsNotFound), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to export organization", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export organization"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Buffer)
}
