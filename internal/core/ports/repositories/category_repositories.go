package repositories

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategoriesByOrganization retrieves every category of an organization,
	// including inactive ones (they remain valid for historical transactions).
	ListCategoriesByOrganization(ctx context.Context, organizationID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory persists changes to an existing category.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// UpdateSortOrders assigns sortOrder = slice index for each id, in a single
	// database transaction so a failed reorder leaves the group untouched.
	UpdateSortOrders(ctx context.Context, organizationID string, orderedIDs []string, userID string) error

	// DeleteCategoryWithReassignment repoints every non-deleted transaction from
	// categoryID to replacementID, promotes child categories to the deleted
	// node's parent and removes the category, all within one database
	// transaction. It returns the number of reassigned transactions.
	DeleteCategoryWithReassignment(ctx context.Context, organizationID, categoryID, replacementID string, userID string) (int64, error)
}

// CategoryRepositoryFacade combines all category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
