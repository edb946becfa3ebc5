package services

import (
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
)

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	settingsSvc := NewSettingsService(repos.SettingsRepo, repos.OrganizationRepo)
	return &portssvc.ServiceContainer{
		SettingsSvc:     settingsSvc,
		TransactionSvc:  NewTransactionService(repos.TransactionRepo, repos.CategoryRepo, repos.CounterpartyRepo, settingsSvc),
		CategorySvc:     NewCategoryService(repos.CategoryRepo, repos.TransactionRepo),
		CounterpartySvc: NewCounterpartyService(repos.CounterpartyRepo),
		ReportingSvc:    NewReportingService(settingsSvc, repos.TransactionRepo, repos.CategoryRepo, repos.CounterpartyRepo),
		ExportSvc:       NewExportService(repos.OrganizationRepo, settingsSvc, repos.TransactionRepo, repos.CategoryRepo, repos.CounterpartyRepo, repos.AccountRepo),
	}
}
