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

// categoryService manages the per-organization category forests.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	txnRepo      portsrepo.TransactionReader
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
	}
}

var _ portssvc.CategoryService = (*categoryService)(nil)

// getOwnedCategory fetches a category and verifies tenancy.
func (s *categoryService) getOwnedCategory(ctx context.Context, organizationID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category.OrganizationID != organizationID {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, organizationID string, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if req.ParentID != nil {
		parent, err := s.getOwnedCategory(ctx, organizationID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.Type != req.Type {
			return nil, fmt.Errorf("%w: parent %s is %s, category is %s", apperrors.ErrTypeMismatch, parent.CategoryID, parent.Type, req.Type)
		}
	}

	includeInPnL := true
	if req.IncludeInPnL != nil {
		includeInPnL = *req.IncludeInPnL
	}

	// New categories append to the end of their sibling group.
	siblings, err := s.categoryRepo.ListCategoriesByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	sortOrder := 0
	for _, c := range siblings {
		if c.Type == req.Type && equalParent(c.ParentID, req.ParentID) && c.SortOrder >= sortOrder {
			sortOrder = c.SortOrder + 1
		}
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:     uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Type:           req.Type,
		ParentID:       req.ParentID,
		IncludeInPnL:   includeInPnL,
		Active:         true,
		SortOrder:      sortOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "failed to save category", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.LogInfo(ctx, "category created",
		slog.String("category_id", category.CategoryID),
		slog.String("organization_id", organizationID),
	)
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, organizationID string, categoryID string) (*domain.Category, error) {
	return s.getOwnedCategory(ctx, organizationID, categoryID)
}

// wouldCycle walks parent pointers upward from candidateParentID looking for
// categoryID. The walk is bounded by the total category count so corrupt data
// with a pre-existing loop cannot hang it.
func wouldCycle(categoryID string, candidateParentID string, byID map[string]domain.Category) bool {
	limit := len(byID) + 1
	current := candidateParentID
	for i := 0; i < limit; i++ {
		if current == categoryID {
			return true
		}
		node, ok := byID[current]
		if !ok || node.ParentID == nil {
			return false
		}
		current = *node.ParentID
	}
	// Walked more steps than categories exist: the stored chain itself loops.
	return true
}

func (s *categoryService) UpdateCategory(ctx context.Context, organizationID string, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	if req.ClearParent && req.ParentID != nil {
		return nil, fmt.Errorf("%w: clearParent and parentID are mutually exclusive", apperrors.ErrValidation)
	}

	category, err := s.getOwnedCategory(ctx, organizationID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		category.Name = *req.Name
	}
	if req.IncludeInPnL != nil {
		category.IncludeInPnL = *req.IncludeInPnL
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if req.ClearParent {
		category.ParentID = nil
	} else if req.ParentID != nil {
		if *req.ParentID == categoryID {
			return nil, fmt.Errorf("%w: category %s cannot be its own parent", apperrors.ErrCycleDetected, categoryID)
		}
		parent, err := s.getOwnedCategory(ctx, organizationID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.Type != category.Type {
			return nil, fmt.Errorf("%w: parent %s is %s, category is %s", apperrors.ErrTypeMismatch, parent.CategoryID, parent.Type, category.Type)
		}

		all, err := s.categoryRepo.ListCategoriesByOrganization(ctx, organizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		byID := make(map[string]domain.Category, len(all))
		for _, c := range all {
			byID[c.CategoryID] = c
		}
		if wouldCycle(categoryID, *req.ParentID, byID) {
			return nil, fmt.Errorf("%w: parenting %s under %s forms a loop", apperrors.ErrCycleDetected, categoryID, *req.ParentID)
		}
		category.ParentID = req.ParentID
	}

	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "failed to update category", slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.LogInfo(ctx, "category updated", slog.String("category_id", categoryID))
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, organizationID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByOrganization(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to list categories", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) ReorderCategories(ctx context.Context, organizationID string, userID string, req dto.ReorderCategoriesRequest) error {
	all, err := s.categoryRepo.ListCategoriesByOrganization(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	// The request must name exactly the (type, parentID) sibling group.
	group := make(map[string]bool)
	for _, c := range all {
		if c.Type == req.Type && equalParent(c.ParentID, req.ParentID) {
			group[c.CategoryID] = true
		}
	}
	if len(req.OrderedIDs) != len(group) {
		return fmt.Errorf("%w: expected %d ids, got %d", apperrors.ErrGroupMismatch, len(group), len(req.OrderedIDs))
	}
	seen := make(map[string]bool, len(req.OrderedIDs))
	for _, id := range req.OrderedIDs {
		if !group[id] {
			return fmt.Errorf("%w: category %s is not in the target group", apperrors.ErrGroupMismatch, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: category %s listed twice", apperrors.ErrGroupMismatch, id)
		}
		seen[id] = true
	}

	if err := s.categoryRepo.UpdateSortOrders(ctx, organizationID, req.OrderedIDs, userID); err != nil {
		s.LogError(ctx, err, "failed to reorder categories", slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to reorder categories: %w", err)
	}

	s.LogInfo(ctx, "categories reordered",
		slog.String("organization_id", organizationID),
		slog.String("type", string(req.Type)),
		slog.Int("count", len(req.OrderedIDs)),
	)
	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, organizationID string, userID string, categoryID string, replacementCategoryID string) (int64, error) {
	category, err := s.getOwnedCategory(ctx, organizationID, categoryID)
	if err != nil {
		return 0, err
	}

	count, err := s.txnRepo.CountTransactionsByCategory(ctx, organizationID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to count category transactions: %w", err)
	}

	// With no linked transactions any placeholder replacement is accepted and
	// the category is simply removed.
	if count > 0 {
		if replacementCategoryID == categoryID {
			return 0, fmt.Errorf("%w: replacement must differ from the deleted category", apperrors.ErrValidation)
		}
		replacement, err := s.getOwnedCategory(ctx, organizationID, replacementCategoryID)
		if err != nil {
			return 0, err
		}
		if replacement.Type != category.Type {
			return 0, fmt.Errorf("%w: replacement %s is %s, category is %s", apperrors.ErrTypeMismatch, replacementCategoryID, replacement.Type, category.Type)
		}
	}

	reassigned, err := s.categoryRepo.DeleteCategoryWithReassignment(ctx, organizationID, categoryID, replacementCategoryID, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to delete category", slog.String("category_id", categoryID))
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}

	s.LogInfo(ctx, "category deleted",
		slog.String("category_id", categoryID),
		slog.Int64("reassigned_count", reassigned),
	)
	return reassigned, nil
}

// equalParent compares two nullable parent references.
func equalParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
