package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// counterpartyService manages vendors and clients.
type counterpartyService struct {
	BaseService
	counterpartyRepo portsrepo.CounterpartyRepositoryFacade
}

// NewCounterpartyService creates a new CounterpartyService.
func NewCounterpartyService(counterpartyRepo portsrepo.CounterpartyRepositoryFacade) portssvc.CounterpartyService {
	return &counterpartyService{counterpartyRepo: counterpartyRepo}
}

var _ portssvc.CounterpartyService = (*counterpartyService)(nil)

// getOwnedCounterparty fetches a counterparty and verifies tenancy.
func (s *counterpartyService) getOwnedCounterparty(ctx context.Context, organizationID, counterpartyID string) (*domain.Counterparty, error) {
	cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: counterparty %s", apperrors.ErrNotFound, counterpartyID)
		}
		return nil, fmt.Errorf("failed to get counterparty: %w", err)
	}
	if cp.OrganizationID != organizationID {
		return nil, fmt.Errorf("%w: counterparty %s", apperrors.ErrNotFound, counterpartyID)
	}
	return cp, nil
}

func (s *counterpartyService) CreateCounterparty(ctx context.Context, organizationID string, userID string, req dto.CreateCounterpartyRequest) (*domain.Counterparty, error) {
	now := time.Now().UTC()
	cp := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		OrganizationID: organizationID,
		Kind:           req.Kind,
		Name:           req.Name,
		Email:          req.Email,
		Notes:          req.Notes,
		Active:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.counterpartyRepo.SaveCounterparty(ctx, cp); err != nil {
		s.LogError(ctx, err, "failed to save counterparty", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save counterparty: %w", err)
	}

	s.LogInfo(ctx, "counterparty created",
		slog.String("counterparty_id", cp.CounterpartyID),
		slog.String("kind", string(cp.Kind)),
	)
	return &cp, nil
}

func (s *counterpartyService) GetCounterpartyByID(ctx context.Context, organizationID string, counterpartyID string) (*domain.Counterparty, error) {
	return s.getOwnedCounterparty(ctx, organizationID, counterpartyID)
}

func (s *counterpartyService) UpdateCounterparty(ctx context.Context, organizationID string, userID string, counterpartyID string, req dto.UpdateCounterpartyRequest) (*domain.Counterparty, error) {
	cp, err := s.getOwnedCounterparty(ctx, organizationID, counterpartyID)
	if err != nil {
		return nil, err
	}
	if cp.MergedIntoID != nil {
		return nil, fmt.Errorf("%w: counterparty %s was merged into %s", apperrors.ErrValidation, counterpartyID, *cp.MergedIntoID)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		cp.Name = *req.Name
	}
	if req.Email != nil {
		cp.Email = *req.Email
	}
	if req.Notes != nil {
		cp.Notes = *req.Notes
	}
	if req.Active != nil {
		cp.Active = *req.Active
	}

	cp.LastUpdatedAt = time.Now().UTC()
	cp.LastUpdatedBy = userID

	if err := s.counterpartyRepo.UpdateCounterparty(ctx, *cp); err != nil {
		s.LogError(ctx, err, "failed to update counterparty", slog.String("counterparty_id", counterpartyID))
		return nil, fmt.Errorf("failed to update counterparty: %w", err)
	}

	s.LogInfo(ctx, "counterparty updated", slog.String("counterparty_id", counterpartyID))
	return cp, nil
}

func (s *counterpartyService) ListCounterparties(ctx context.Context, organizationID string, kind *domain.CounterpartyKind) ([]domain.Counterparty, error) {
	counterparties, err := s.counterpartyRepo.ListCounterpartiesByOrganization(ctx, organizationID, kind)
	if err != nil {
		s.LogError(ctx, err, "failed to list counterparties", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}
	if counterparties == nil {
		return []domain.Counterparty{}, nil
	}
	return counterparties, nil
}

func (s *counterpartyService) MergeCounterparties(ctx context.Context, organizationID string, userID string, req dto.MergeCounterpartiesRequest) (int64, error) {
	primary, err := s.getOwnedCounterparty(ctx, organizationID, req.PrimaryID)
	if err != nil {
		return 0, err
	}
	if primary.MergedIntoID != nil {
		return 0, fmt.Errorf("%w: primary %s was itself merged away", apperrors.ErrValidation, req.PrimaryID)
	}

	seen := map[string]bool{req.PrimaryID: true}
	for _, secondaryID := range req.SecondaryIDs {
		if seen[secondaryID] {
			return 0, fmt.Errorf("%w: counterparty %s appears more than once in the merge", apperrors.ErrValidation, secondaryID)
		}
		seen[secondaryID] = true

		secondary, err := s.getOwnedCounterparty(ctx, organizationID, secondaryID)
		if err != nil {
			return 0, err
		}
		if secondary.Kind != primary.Kind {
			return 0, fmt.Errorf("%w: cannot merge %s %s into %s %s", apperrors.ErrTypeMismatch, secondary.Kind, secondaryID, primary.Kind, req.PrimaryID)
		}
		if secondary.MergedIntoID != nil {
			return 0, fmt.Errorf("%w: counterparty %s was already merged", apperrors.ErrValidation, secondaryID)
		}
	}

	repointed, err := s.counterpartyRepo.MergeCounterparties(ctx, organizationID, req.PrimaryID, req.SecondaryIDs, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to merge counterparties", slog.String("primary_id", req.PrimaryID))
		return 0, fmt.Errorf("failed to merge counterparties: %w", err)
	}

	s.LogInfo(ctx, "counterparties merged",
		slog.String("primary_id", req.PrimaryID),
		slog.Int("secondary_count", len(req.SecondaryIDs)),
		slog.Int64("repointed_count", repointed),
	)
	return repointed, nil
}
