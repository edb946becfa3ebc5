package mapping

import (
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:     d.CategoryID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Type:           models.TransactionType(d.Type),
		ParentID:       d.ParentID,
		IncludeInPnL:   d.IncludeInPnL,
		Active:         d.Active,
		SortOrder:      d.SortOrder,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:     m.CategoryID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Type:           domain.TransactionType(m.Type),
		ParentID:       m.ParentID,
		IncludeInPnL:   m.IncludeInPnL,
		Active:         m.Active,
		SortOrder:      m.SortOrder,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model Categories to domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
