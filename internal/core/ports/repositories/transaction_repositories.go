package repositories

import (
	"context"
	"time"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// TransactionFilters narrows a transaction query. Nil fields are ignored.
// Soft-deleted rows are always excluded unless IncludeDeleted is set.
type TransactionFilters struct {
	DateFrom       *time.Time
	DateTo         *time.Time
	Type           *domain.TransactionType
	Status         *domain.TransactionStatus
	CategoryID     *string
	CounterpartyID *string
	IncludeDeleted bool
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// QueryTransactions retrieves all transactions for an organization matching the filters.
	QueryTransactions(ctx context.Context, organizationID string, filters TransactionFilters) ([]domain.Transaction, error)

	// ListTransactions retrieves a page of filtered transactions using token-based
	// pagination, ordered by (date, created_at). It returns the transactions, a
	// token for the next page, and an error.
	ListTransactions(ctx context.Context, organizationID string, filters TransactionFilters, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// CountTransactionsByCategory returns the number of non-deleted transactions
	// referencing the given category.
	CountTransactionsByCategory(ctx context.Context, organizationID, categoryID string) (int64, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction persists changes to an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// SoftDeleteTransaction marks a transaction as deleted without removing the row.
	SoftDeleteTransaction(ctx context.Context, transactionID string, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
