package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		CounterpartyRepo: newPgxCounterpartyRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		SettingsRepo:     newPgxSettingsRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
	}
}
