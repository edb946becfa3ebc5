package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
	"github.com/tallybooks/tally_books_app/internal/middleware"
	"github.com/tallybooks/tally_books_app/internal/utils"
)

// reportingHandler handles HTTP requests for the report generators.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the report endpoints.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/pnl", h.profitAndLoss)
		reports.GET("/categories", h.categoryReport)
		reports.GET("/counterparties", h.counterpartyReport)
	}
}

// parseReportParams reads the shared report query parameters.
func parseReportParams(c *gin.Context) (dto.ReportParams, error) {
	params := dto.ReportParams{
		DateMode:    domain.DateModeFiscalYear,
		DetailLevel: domain.DetailSummary,
	}

	if v := c.Query("dateMode"); v != "" {
		mode := domain.DateMode(v)
		if mode != domain.DateModeFiscalYear && mode != domain.DateModeCustom {
			return params, errors.New("invalid dateMode, expected FISCAL_YEAR or CUSTOM")
		}
		params.DateMode = mode
	}
	if v := c.Query("from"); v != "" {
		params.CustomFrom = &v
	}
	if v := c.Query("to"); v != "" {
		params.CustomTo = &v
	}
	if v := c.Query("detailLevel"); v != "" {
		level := domain.DetailLevel(v)
		if level != domain.DetailSummary && level != domain.DetailDetailed {
			return params, errors.New("invalid detailLevel, expected SUMMARY or DETAILED")
		}
		params.DetailLevel = level
	}
	if v := c.Query("type"); v != "" {
		txnType := domain.TransactionType(v)
		if txnType != domain.Income && txnType != domain.Expense {
			return params, errors.New("invalid type, expected INCOME or EXPENSE")
		}
		params.TypeFilter = &txnType
	}
	return params, nil
}

// amountFormatter renders amounts with the organization's separators.
func amountFormatter(f domain.Formatting) func(decimal.Decimal) string {
	return func(d decimal.Decimal) string {
		return utils.FormatAmount(d, f.DecimalSeparator, f.ThousandsSeparator)
	}
}

func (h *reportingHandler) respondReportError(c *gin.Context, logger *slog.Logger, err error, what string) {
	switch {
	case errors.Is(err, apperrors.ErrSettingsNotFound):
		logger.Warn("Report blocked by missing settings", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrCycleDetected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to build "+what, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build " + what})
	}
}

func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	params, err := parseReportParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), organizationID, params)
	if err != nil {
		h.respondReportError(c, logger, err, "profit and loss report")
		return
	}

	c.JSON(http.StatusOK, dto.ToPnLResponse(report, amountFormatter(report.Formatting)))
}

func (h *reportingHandler) categoryReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	params, err := parseReportParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.CategoryReport(c.Request.Context(), organizationID, params)
	if err != nil {
		h.respondReportError(c, logger, err, "category report")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryReportResponse(report, amountFormatter(report.Formatting)))
}

func (h *reportingHandler) counterpartyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	params, err := parseReportParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := c.DefaultQuery("view", "all")
	if view != "all" && view != "income" && view != "expense" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view, expected income, expense or all"})
		return
	}

	report, err := h.reportingService.CounterpartyReport(c.Request.Context(), organizationID, params)
	if err != nil {
		h.respondReportError(c, logger, err, "counterparty report")
		return
	}

	resp := dto.ToCounterpartyReportResponse(report, amountFormatter(report.Formatting))

	// The view is a display filter over the aggregated rows: it discards rows
	// where the relevant side is zero, it does not change the totals.
	if view != "all" {
		filtered := resp.Rows[:0]
		for _, row := range resp.Rows {
			if view == "income" && row.TotalIncomeBase.IsZero() {
				continue
			}
			if view == "expense" && row.TotalExpenseBase.IsZero() {
				continue
			}
			filtered = append(filtered, row)
		}
		resp.Rows = filtered
	}

	c.JSON(http.StatusOK, resp)
}
