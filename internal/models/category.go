package models

// Category is the database representation of a transaction category.
type Category struct {
	CategoryID     string          `json:"categoryID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	Type           TransactionType `json:"type"`
	ParentID       *string         `json:"parentID,omitempty"`
	IncludeInPnL   bool            `json:"includeInPnL"`
	Active         bool            `json:"active"`
	SortOrder      int             `json:"sortOrder"`
	AuditFields
}
