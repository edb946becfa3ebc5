package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	TransactionRepo  TransactionRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	CounterpartyRepo CounterpartyRepositoryFacade
	OrganizationRepo OrganizationReader
	SettingsRepo     SettingsRepository
	AccountRepo      AccountReader
}
