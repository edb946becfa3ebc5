package services

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// CategoryService defines operations over the per-organization category
// forests.
type CategoryService interface {
	// CreateCategory validates and creates a category. A parent of a
	// different transaction type returns apperrors.ErrTypeMismatch.
	CreateCategory(ctx context.Context, organizationID string, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// GetCategoryByID retrieves a single category.
	GetCategoryByID(ctx context.Context, organizationID string, categoryID string) (*domain.Category, error)

	// UpdateCategory applies a partial edit. Re-parenting that would form a
	// cycle returns apperrors.ErrCycleDetected.
	UpdateCategory(ctx context.Context, organizationID string, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// ListCategories returns every category of the organization ordered by
	// type, parent and sort order.
	ListCategories(ctx context.Context, organizationID string) ([]domain.Category, error)

	// ReorderCategories replaces the display order of one sibling group.
	// The id set must match the group exactly or apperrors.ErrGroupMismatch
	// is returned.
	ReorderCategories(ctx context.Context, organizationID string, userID string, req dto.ReorderCategoriesRequest) error

	// DeleteCategory deletes a category after moving its transactions to the
	// replacement, atomically. It reports how many transactions moved.
	DeleteCategory(ctx context.Context, organizationID string, userID string, categoryID string, replacementCategoryID string) (int64, error)
}
