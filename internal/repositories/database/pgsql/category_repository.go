package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	"github.com/tallybooks/tally_books_app/internal/models"
	"github.com/tallybooks/tally_books_app/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, organization_id, name, type, parent_id, include_in_pnl, active, sort_order, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.OrganizationID,
		&m.Name,
		&m.Type,
		&m.ParentID,
		&m.IncludeInPnL,
		&m.Active,
		&m.SortOrder,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.OrganizationID,
		m.Name,
		m.Type,
		m.ParentID,
		m.IncludeInPnL,
		m.Active,
		m.SortOrder,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %s already exists", apperrors.ErrDuplicate, m.CategoryID)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $2, parent_id = $3, include_in_pnl = $4, active = $5, sort_order = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE category_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.ParentID,
		m.IncludeInPnL,
		m.Active,
		m.SortOrder,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

func (r *PgxCategoryRepository) ListCategoriesByOrganization(ctx context.Context, organizationID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + ` FROM categories
		WHERE organization_id = $1
		ORDER BY type, parent_id NULLS FIRST, sort_order;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	var results []models.Category
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading category rows: %w", err)
	}
	return mapping.ToDomainCategorySlice(results), nil
}

// UpdateSortOrders assigns sortOrder = index for each id inside one database
// transaction so a failed reorder leaves the group untouched.
func (r *PgxCategoryRepository) UpdateSortOrders(ctx context.Context, organizationID string, orderedIDs []string, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for index, categoryID := range orderedIDs {
		batch.Queue(`
			UPDATE categories
			SET sort_order = $3, last_updated_at = $4, last_updated_by = $5
			WHERE category_id = $1 AND organization_id = $2;
		`, categoryID, organizationID, index, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	for range orderedIDs {
		tag, err := br.Exec()
		if err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("failed to update sort orders: %w", err)
		}
		if tag.RowsAffected() == 0 {
			br.Close() //nolint:errcheck
			return apperrors.ErrNotFound
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close sort order batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteCategoryWithReassignment repoints live transactions to the
// replacement, promotes children to the deleted node's parent and removes the
// category, all in one database transaction.
func (r *PgxCategoryRepository) DeleteCategoryWithReassignment(ctx context.Context, organizationID, categoryID, replacementID string, userID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	now := time.Now().UTC()

	reassignQuery := `
		UPDATE transactions
		SET category_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $1 AND category_id = $2 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, reassignQuery, organizationID, categoryID, replacementID, now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign transactions from category %s: %w", categoryID, err)
	}
	reassignedCount := tag.RowsAffected()

	promoteQuery := `
		UPDATE categories
		SET parent_id = (SELECT parent_id FROM categories WHERE category_id = $2),
		    last_updated_at = $3, last_updated_by = $4
		WHERE organization_id = $1 AND parent_id = $2;
	`
	if _, err := tx.Exec(ctx, promoteQuery, organizationID, categoryID, now, userID); err != nil {
		return 0, fmt.Errorf("failed to promote children of category %s: %w", categoryID, err)
	}

	deleteQuery := `DELETE FROM categories WHERE organization_id = $1 AND category_id = $2;`
	tag, err = tx.Exec(ctx, deleteQuery, organizationID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return reassignedCount, nil
}
