package services

// ServiceContainer bundles all service implementations for injection into
// the HTTP handlers.
type ServiceContainer struct {
	TransactionSvc  TransactionService
	CategorySvc     CategoryService
	CounterpartySvc CounterpartyService
	ReportingSvc    ReportingService
	ExportSvc       ExportService
	SettingsSvc     SettingsService
}
