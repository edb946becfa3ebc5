package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// settingsService manages the per-organization settings record.
type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
	orgRepo      portsrepo.OrganizationReader
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository, orgRepo portsrepo.OrganizationReader) portssvc.SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		orgRepo:      orgRepo,
	}
}

var _ portssvc.SettingsService = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context, organizationID string) (*domain.OrganizationSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: organization %s has no settings record", apperrors.ErrSettingsNotFound, organizationID)
		}
		s.LogError(ctx, err, "failed to get settings", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	settings.ApplyDefaults()
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, organizationID string, userID string, req dto.UpdateSettingsRequest) (*domain.OrganizationSettings, error) {
	settings, err := s.GetSettings(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSettingsNotFound) {
			return nil, err
		}
		// First write creates the record, provided the organization exists.
		if _, orgErr := s.orgRepo.FindOrganizationByID(ctx, organizationID); orgErr != nil {
			if errors.Is(orgErr, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: organization %s", apperrors.ErrNotFound, organizationID)
			}
			return nil, fmt.Errorf("failed to get organization: %w", orgErr)
		}
		now := time.Now().UTC()
		settings = &domain.OrganizationSettings{
			OrganizationID: organizationID,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: userID,
			},
		}
		settings.ApplyDefaults()
	}

	if req.BaseCurrency != nil {
		settings.BaseCurrency = *req.BaseCurrency
	}
	if req.FiscalYearStartMonth != nil {
		settings.FiscalYearStartMonth = *req.FiscalYearStartMonth
	}
	if req.DecimalSeparator != nil {
		settings.DecimalSeparator = domain.SeparatorStyle(*req.DecimalSeparator)
	}
	if req.ThousandsSeparator != nil {
		settings.ThousandsSeparator = domain.SeparatorStyle(*req.ThousandsSeparator)
	}
	if req.DateFormat != nil {
		settings.DateFormat = domain.DateFormat(*req.DateFormat)
	}
	if req.SoftClosedBefore != nil {
		settings.SoftClosedBefore = req.SoftClosedBefore
	}

	now := time.Now().UTC()
	settings.LastUpdatedAt = now
	settings.LastUpdatedBy = userID

	if err := s.settingsRepo.SaveSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "failed to save settings", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.LogInfo(ctx, "organization settings updated", slog.String("organization_id", organizationID))
	return settings, nil
}
