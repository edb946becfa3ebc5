package services

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// TransactionService defines the write and read surface for ledger
// transactions.
type TransactionService interface {
	// CreateTransaction validates and records a new transaction.
	CreateTransaction(ctx context.Context, organizationID string, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves a single transaction.
	GetTransactionByID(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error)

	// UpdateTransaction applies a partial edit. Editing a POSTED transaction
	// dated inside a soft-closed window returns apperrors.ErrSoftClosed
	// unless the request carries AllowSoftClosedOverride.
	UpdateTransaction(ctx context.Context, organizationID string, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction soft deletes a transaction. The soft-close rule
	// applies the same way it does for updates.
	DeleteTransaction(ctx context.Context, organizationID string, userID string, transactionID string, allowSoftClosedOverride bool) error

	// ListTransactions returns a filtered page plus a token for the next one.
	ListTransactions(ctx context.Context, organizationID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}
