package services

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// CounterpartyService defines operations over vendors and clients.
type CounterpartyService interface {
	// CreateCounterparty creates a vendor or client.
	CreateCounterparty(ctx context.Context, organizationID string, userID string, req dto.CreateCounterpartyRequest) (*domain.Counterparty, error)

	// GetCounterpartyByID retrieves a single counterparty.
	GetCounterpartyByID(ctx context.Context, organizationID string, counterpartyID string) (*domain.Counterparty, error)

	// UpdateCounterparty applies a partial edit.
	UpdateCounterparty(ctx context.Context, organizationID string, userID string, counterpartyID string, req dto.UpdateCounterpartyRequest) (*domain.Counterparty, error)

	// ListCounterparties returns the organization's counterparties,
	// optionally filtered to one kind. Merged records are excluded.
	ListCounterparties(ctx context.Context, organizationID string, kind *domain.CounterpartyKind) ([]domain.Counterparty, error)

	// MergeCounterparties repoints every transaction of the secondaries to
	// the primary and retires the secondaries, atomically. All parties must
	// share a kind or apperrors.ErrTypeMismatch is returned. It reports how
	// many transactions were repointed.
	MergeCounterparties(ctx context.Context, organizationID string, userID string, req dto.MergeCounterpartiesRequest) (int64, error)
}
