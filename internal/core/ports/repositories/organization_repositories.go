package repositories

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
}

// SettingsRepository defines operations for the per-organization settings record
type SettingsRepository interface {
	// GetSettings retrieves the settings row for an organization.
	// Returns apperrors.ErrNotFound when no row exists.
	GetSettings(ctx context.Context, organizationID string) (*domain.OrganizationSettings, error)

	// SaveSettings inserts or updates the settings row.
	SaveSettings(ctx context.Context, settings domain.OrganizationSettings) error
}

// AccountReader defines read operations for money account data
type AccountReader interface {
	// ListAccountsByOrganization retrieves all money accounts of an organization.
	ListAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.Account, error)
}
