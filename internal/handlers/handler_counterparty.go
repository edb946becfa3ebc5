package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
	"github.com/tallybooks/tally_books_app/internal/middleware"
)

// counterpartyHandler handles HTTP requests related to vendors and clients.
type counterpartyHandler struct {
	counterpartyService portssvc.CounterpartyService
}

func newCounterpartyHandler(cs portssvc.CounterpartyService) *counterpartyHandler {
	return &counterpartyHandler{counterpartyService: cs}
}

// registerCounterpartyRoutes registers routes related to counterparties.
func registerCounterpartyRoutes(rg *gin.RouterGroup, counterpartyService portssvc.CounterpartyService) {
	h := newCounterpartyHandler(counterpartyService)

	counterparties := rg.Group("/counterparties")
	{
		counterparties.POST("", h.createCounterparty)
		counterparties.GET("", h.listCounterparties)
		counterparties.GET("/:counterparty_id", h.getCounterparty)
		counterparties.PUT("/:counterparty_id", h.updateCounterparty)
		counterparties.POST("/merge", h.mergeCounterparties)
	}
}

func (h *counterpartyHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cp, err := h.counterpartyService.CreateCounterparty(c.Request.Context(), organizationID, userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create counterparty", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create counterparty"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCounterpartyResponse(cp))
}

func (h *counterpartyHandler) getCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	counterpartyID := c.Param("counterparty_id")

	cp, err := h.counterpartyService.GetCounterpartyByID(c.Request.Context(), organizationID, counterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Counterparty not found"})
		} else {
			logger.Error("Failed to get counterparty", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve counterparty"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

func (h *counterpartyHandler) listCounterparties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var kind *domain.CounterpartyKind
	if v := c.Query("kind"); v != "" {
		k := domain.CounterpartyKind(v)
		if k != domain.KindVendor && k != domain.KindClient {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kind, expected VENDOR or CLIENT"})
			return
		}
		kind = &k
	}

	counterparties, err := h.counterpartyService.ListCounterparties(c.Request.Context(), organizationID, kind)
	if err != nil {
		logger.Error("Failed to list counterparties", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list counterparties"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCounterpartiesResponse{Counterparties: dto.ToCounterpartyResponses(counterparties)})
}

func (h *counterpartyHandler) updateCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	counterpartyID := c.Param("counterparty_id")

	var req dto.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cp, err := h.counterpartyService.UpdateCounterparty(c.Request.Context(), organizationID, userID, counterpartyID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update counterparty", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update counterparty"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

func (h *counterpartyHandler) mergeCounterparties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.MergeCounterpartiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MergeCounterparties", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	repointed, err := h.counterpartyService.MergeCounterparties(c.Request.Context(), organizationID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTypeMismatch), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error merging counterparties", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to merge counterparties", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge counterparties"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MergeCounterpartiesResponse{RepointedCount: repointed})
}
