package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	"github.com/tallybooks/tally_books_app/internal/models"
	"github.com/tallybooks/tally_books_app/internal/utils/mapping"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for organization settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// GetSettings retrieves the settings row. Individually NULL columns scan to
// zero values; defaults are applied at the domain layer.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context, organizationID string) (*domain.OrganizationSettings, error) {
	query := `
		SELECT organization_id, base_currency, fiscal_year_start_month, decimal_separator,
		       thousands_separator, date_format, soft_closed_before,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM organization_settings
		WHERE organization_id = $1;
	`
	var m models.OrganizationSettings
	var baseCurrency, decimalSep, thousandsSep, dateFormat sql.NullString
	var fiscalMonth sql.NullInt32

	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&baseCurrency,
		&fiscalMonth,
		&decimalSep,
		&thousandsSep,
		&dateFormat,
		&m.SoftClosedBefore,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings for organization %s: %w", organizationID, err)
	}

	m.BaseCurrency = baseCurrency.String
	m.FiscalYearStartMonth = int(fiscalMonth.Int32)
	m.DecimalSeparator = decimalSep.String
	m.ThousandsSeparator = thousandsSep.String
	m.DateFormat = dateFormat.String

	d := mapping.ToDomainSettings(m)
	return &d, nil
}

func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.OrganizationSettings) error {
	m := mapping.ToModelSettings(settings)

	query := `
		INSERT INTO organization_settings (organization_id, base_currency, fiscal_year_start_month,
			decimal_separator, thousands_separator, date_format, soft_closed_before,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (organization_id) DO UPDATE
		SET base_currency = EXCLUDED.base_currency,
		    fiscal_year_start_month = EXCLUDED.fiscal_year_start_month,
		    decimal_separator = EXCLUDED.decimal_separator,
		    thousands_separator = EXCLUDED.thousands_separator,
		    date_format = EXCLUDED.date_format,
		    soft_closed_before = EXCLUDED.soft_closed_before,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.BaseCurrency,
		m.FiscalYearStartMonth,
		m.DecimalSeparator,
		m.ThousandsSeparator,
		m.DateFormat,
		m.SoftClosedBefore,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings for organization %s: %w", m.OrganizationID, err)
	}
	return nil
}
