package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerHomeRoutes(r)
	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations. Every ledger route is organization scoped.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	org := v1.Group("/organizations/:organization_id")
	registerTransactionRoutes(org, services.TransactionSvc)
	registerCategoryRoutes(org, services.CategorySvc)
	registerCounterpartyRoutes(org, services.CounterpartySvc)
	registerReportingRoutes(org, services.ReportingSvc)
	registerExportRoutes(org, services.ExportSvc)
	registerSettingsRoutes(org, services.SettingsSvc)
}
