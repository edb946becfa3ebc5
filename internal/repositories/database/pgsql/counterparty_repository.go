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

type PgxCounterpartyRepository struct {
	BaseRepository
}

// newPgxCounterpartyRepository creates a new repository for counterparty data.
func newPgxCounterpartyRepository(pool *pgxpool.Pool) portsrepo.CounterpartyRepositoryFacade {
	return &PgxCounterpartyRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CounterpartyRepositoryFacade = (*PgxCounterpartyRepository)(nil)

const counterpartyColumns = `counterparty_id, organization_id, kind, name, email, notes, active, merged_into_id, created_at, created_by, last_updated_at, last_updated_by`

func scanCounterparty(row pgx.Row) (models.Counterparty, error) {
	var m models.Counterparty
	err := row.Scan(
		&m.CounterpartyID,
		&m.OrganizationID,
		&m.Kind,
		&m.Name,
		&m.Email,
		&m.Notes,
		&m.Active,
		&m.MergedIntoID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCounterpartyRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	m := mapping.ToModelCounterparty(cp)

	query := `
		INSERT INTO counterparties (` + counterpartyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CounterpartyID,
		m.OrganizationID,
		m.Kind,
		m.Name,
		m.Email,
		m.Notes,
		m.Active,
		m.MergedIntoID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: counterparty %s already exists", apperrors.ErrDuplicate, m.CounterpartyID)
		}
		return fmt.Errorf("failed to save counterparty %s: %w", m.CounterpartyID, err)
	}
	return nil
}

func (r *PgxCounterpartyRepository) UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error {
	m := mapping.ToModelCounterparty(cp)

	query := `
		UPDATE counterparties
		SET name = $2, email = $3, notes = $4, active = $5, merged_into_id = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE counterparty_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CounterpartyID,
		m.Name,
		m.Email,
		m.Notes,
		m.Active,
		m.MergedIntoID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update counterparty %s: %w", m.CounterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCounterpartyRepository) FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE counterparty_id = $1;`

	m, err := scanCounterparty(r.Pool.QueryRow(ctx, query, counterpartyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find counterparty %s: %w", counterpartyID, err)
	}
	d := mapping.ToDomainCounterparty(m)
	return &d, nil
}

func (r *PgxCounterpartyRepository) ListCounterpartiesByOrganization(ctx context.Context, organizationID string, kind *domain.CounterpartyKind) ([]domain.Counterparty, error) {
	query := `
		SELECT ` + counterpartyColumns + ` FROM counterparties
		WHERE organization_id = $1 AND merged_into_id IS NULL
	`
	args := []interface{}{organizationID}
	if kind != nil {
		args = append(args, string(*kind))
		query += ` AND kind = $2`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list counterparties for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	var results []models.Counterparty
	for rows.Next() {
		m, err := scanCounterparty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan counterparty row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading counterparty rows: %w", err)
	}
	return mapping.ToDomainCounterpartySlice(results), nil
}

// MergeCounterparties repoints every live transaction of the secondaries to
// the primary and retires the secondaries, all in one database transaction.
func (r *PgxCounterpartyRepository) MergeCounterparties(ctx context.Context, organizationID, primaryID string, secondaryIDs []string, userID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	now := time.Now().UTC()

	repointVendors := `
		UPDATE transactions
		SET vendor_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $1 AND vendor_id = ANY($2) AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, repointVendors, organizationID, secondaryIDs, primaryID, now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to repoint vendor transactions: %w", err)
	}
	repointed := tag.RowsAffected()

	repointClients := `
		UPDATE transactions
		SET client_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $1 AND client_id = ANY($2) AND deleted_at IS NULL;
	`
	tag, err = tx.Exec(ctx, repointClients, organizationID, secondaryIDs, primaryID, now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to repoint client transactions: %w", err)
	}
	repointed += tag.RowsAffected()

	retireQuery := `
		UPDATE counterparties
		SET merged_into_id = $3, active = FALSE, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $1 AND counterparty_id = ANY($2) AND merged_into_id IS NULL;
	`
	tag, err = tx.Exec(ctx, retireQuery, organizationID, secondaryIDs, primaryID, now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to retire merged counterparties: %w", err)
	}
	if tag.RowsAffected() != int64(len(secondaryIDs)) {
		// A secondary disappeared or was merged concurrently; abort the whole merge.
		return 0, fmt.Errorf("%w: merge retired %d of %d counterparties", apperrors.ErrConflict, tag.RowsAffected(), len(secondaryIDs))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return repointed, nil
}
