package dto

import (
	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// CreateCategoryRequest is the payload for creating a category.
// IncludeInPnL defaults to true when omitted.
type CreateCategoryRequest struct {
	Name         string                 `json:"name" binding:"required"`
	Type         domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	ParentID     *string                `json:"parentID,omitempty"`
	IncludeInPnL *bool                  `json:"includeInPnL,omitempty"`
}

// UpdateCategoryRequest is the payload for editing a category. The type is
// immutable and deliberately absent. ClearParent promotes the category to
// top level; it cannot be combined with ParentID.
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	ParentID     *string `json:"parentID,omitempty"`
	ClearParent  bool    `json:"clearParent,omitempty"`
	IncludeInPnL *bool   `json:"includeInPnL,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// ReorderCategoriesRequest assigns display order to a full sibling group.
// OrderedIDs must contain exactly the ids of the (type, parentID) group.
type ReorderCategoriesRequest struct {
	Type       domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	ParentID   *string                `json:"parentID,omitempty"`
	OrderedIDs []string               `json:"orderedIDs" binding:"required,min=1"`
}

// DeleteCategoryRequest carries the replacement for delete-with-reassignment.
// The replacement is ignored when the category has no linked transactions.
type DeleteCategoryRequest struct {
	ReplacementCategoryID string `json:"replacementCategoryID" binding:"required"`
}

// DeleteCategoryResponse reports the outcome of a category deletion.
type DeleteCategoryResponse struct {
	ReassignedCount int64 `json:"reassignedCount"`
}

// CategoryResponse is the wire representation of a category.
type CategoryResponse struct {
	CategoryID   string  `json:"categoryID"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	ParentID     *string `json:"parentID,omitempty"`
	IncludeInPnL bool    `json:"includeInPnL"`
	Active       bool    `json:"active"`
	SortOrder    int     `json:"sortOrder"`
}

// ListCategoriesResponse is the full category forest of an organization.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category to its wire form.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:   c.CategoryID,
		Name:         c.Name,
		Type:         string(c.Type),
		ParentID:     c.ParentID,
		IncludeInPnL: c.IncludeInPnL,
		Active:       c.Active,
		SortOrder:    c.SortOrder,
	}
}

// ToCategoryResponses converts a slice of domain Categories to wire form.
func ToCategoryResponses(cs []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(cs))
	for i := range cs {
		responses[i] = ToCategoryResponse(&cs[i])
	}
	return responses
}
