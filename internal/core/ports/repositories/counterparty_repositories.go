package repositories

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// CounterpartyReader defines read operations for vendor/client data
type CounterpartyReader interface {
	// FindCounterpartyByID retrieves a counterparty by its unique identifier.
	FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)

	// ListCounterpartiesByOrganization retrieves all counterparties of the given
	// kind, or of both kinds when kind is nil.
	ListCounterpartiesByOrganization(ctx context.Context, organizationID string, kind *domain.CounterpartyKind) ([]domain.Counterparty, error)
}

// CounterpartyWriter defines write operations for vendor/client data
type CounterpartyWriter interface {
	// SaveCounterparty persists a new counterparty.
	SaveCounterparty(ctx context.Context, cp domain.Counterparty) error

	// UpdateCounterparty persists changes to an existing counterparty.
	UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error

	// MergeCounterparties repoints every transaction referencing a secondary onto
	// the primary and deactivates the secondaries, all within one database
	// transaction. It returns the number of repointed transactions.
	MergeCounterparties(ctx context.Context, organizationID, primaryID string, secondaryIDs []string, userID string) (int64, error)
}

// CounterpartyRepositoryFacade combines all counterparty repository interfaces
type CounterpartyRepositoryFacade interface {
	CounterpartyReader
	CounterpartyWriter
}
