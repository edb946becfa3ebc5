package domain

// Category is a named bucket for transactions. Categories of the same type
// form a forest via ParentID; the type is immutable after creation and a
// parent must always be of the same type.
type Category struct {
	CategoryID     string          `json:"categoryID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	Type           TransactionType `json:"type"`
	ParentID       *string         `json:"parentID,omitempty"` // Nullable self reference, same type, acyclic
	IncludeInPnL   bool            `json:"includeInPnL"`       // Excluded categories still track transactions
	Active         bool            `json:"active"`             // Inactive categories stay valid for history
	SortOrder      int             `json:"sortOrder"`          // Display order within the (type, parentID) sibling group
	AuditFields
}

// IsTopLevel reports whether the category has no parent.
func (c Category) IsTopLevel() bool {
	return c.ParentID == nil
}
