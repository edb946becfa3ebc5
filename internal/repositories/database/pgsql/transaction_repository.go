package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	"github.com/tallybooks/tally_books_app/internal/models"
	"github.com/tallybooks/tally_books_app/internal/utils/mapping"
	"github.com/tallybooks/tally_books_app/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, organization_id, type, status, amount_base, amount_secondary, currency_secondary, txn_date, description, category_id, account_id, vendor_id, client_id, tags, document_refs, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

// scanTransaction reads one row in transactionColumns order.
func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OrganizationID,
		&m.Type,
		&m.Status,
		&m.AmountBase,
		&m.AmountSecondary,
		&m.CurrencySecondary,
		&m.Date,
		&m.Description,
		&m.CategoryID,
		&m.AccountID,
		&m.VendorID,
		&m.ClientID,
		&m.Tags,
		&m.DocumentRefs,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.OrganizationID,
		m.Type,
		m.Status,
		m.AmountBase,
		m.AmountSecondary,
		m.CurrencySecondary,
		m.Date,
		m.Description,
		m.CategoryID,
		m.AccountID,
		m.VendorID,
		m.ClientID,
		m.Tags,
		m.DocumentRefs,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET type = $2, status = $3, amount_base = $4, amount_secondary = $5, currency_secondary = $6,
		    txn_date = $7, description = $8, category_id = $9, account_id = $10, vendor_id = $11,
		    client_id = $12, tags = $13, document_refs = $14, last_updated_at = $15, last_updated_by = $16
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Type,
		m.Status,
		m.AmountBase,
		m.AmountSecondary,
		m.CurrencySecondary,
		m.Date,
		m.Description,
		m.CategoryID,
		m.AccountID,
		m.VendorID,
		m.ClientID,
		m.Tags,
		m.DocumentRefs,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) SoftDeleteTransaction(ctx context.Context, transactionID string, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// buildFilterClause renders the filter set into WHERE conditions starting at
// argument position len(args)+1. The organization condition is always first.
func buildFilterClause(organizationID string, filters portsrepo.TransactionFilters) (string, []interface{}) {
	clause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if !filters.IncludeDeleted {
		clause += ` AND deleted_at IS NULL`
	}
	if filters.DateFrom != nil {
		args = append(args, *filters.DateFrom)
		clause += ` AND txn_date >= $` + strconv.Itoa(len(args))
	}
	if filters.DateTo != nil {
		args = append(args, *filters.DateTo)
		clause += ` AND txn_date <= $` + strconv.Itoa(len(args))
	}
	if filters.Type != nil {
		args = append(args, string(*filters.Type))
		clause += ` AND type = $` + strconv.Itoa(len(args))
	}
	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		clause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		clause += ` AND category_id = $` + strconv.Itoa(len(args))
	}
	if filters.CounterpartyID != nil {
		args = append(args, *filters.CounterpartyID)
		pos := strconv.Itoa(len(args))
		clause += ` AND (vendor_id = $` + pos + ` OR client_id = $` + pos + `)`
	}
	return clause, args
}

func (r *PgxTransactionRepository) QueryTransactions(ctx context.Context, organizationID string, filters portsrepo.TransactionFilters) ([]domain.Transaction, error) {
	clause, args := buildFilterClause(organizationID, filters)
	query := `SELECT ` + transactionColumns + ` FROM transactions ` + clause + ` ORDER BY txn_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	var results []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(results), nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, organizationID string, filters portsrepo.TransactionFilters, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there is a next page.
	fetchLimit := limit + 1

	clause, args := buildFilterClause(organizationID, filters)
	orderByClause := `ORDER BY txn_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		clause += ` AND (txn_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + transactionColumns + ` FROM transactions ` + clause + ` ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		last := results[len(results)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

func (r *PgxTransactionRepository) CountTransactionsByCategory(ctx context.Context, organizationID, categoryID string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM transactions
		WHERE organization_id = $1 AND category_id = $2 AND deleted_at IS NULL;
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, organizationID, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for category %s: %w", categoryID, err)
	}
	return count, nil
}
