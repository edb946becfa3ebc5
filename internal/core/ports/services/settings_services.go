package services

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// SettingsService defines operations over the per-organization settings
// record.
type SettingsService interface {
	// GetSettings retrieves the settings record with per-field defaults
	// applied. A missing record returns apperrors.ErrSettingsNotFound.
	GetSettings(ctx context.Context, organizationID string) (*domain.OrganizationSettings, error)

	// UpdateSettings applies a partial edit to the settings record, creating
	// it with defaults on first write. The organization must exist.
	UpdateSettings(ctx context.Context, organizationID string, userID string, req dto.UpdateSettingsRequest) (*domain.OrganizationSettings, error)
}
