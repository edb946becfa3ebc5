package models

// Account is the database representation of a money account.
type Account struct {
	AccountID      string `json:"accountID"`
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	Active         bool   `json:"active"`
	AuditFields
}
