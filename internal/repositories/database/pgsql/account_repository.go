package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	"github.com/tallybooks/tally_books_app/internal/models"
	"github.com/tallybooks/tally_books_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for money account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountReader {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) ListAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, organization_id, name, currency, active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE organization_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	var results []models.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID,
			&m.OrganizationID,
			&m.Name,
			&m.Currency,
			&m.Active,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(results), nil
}
