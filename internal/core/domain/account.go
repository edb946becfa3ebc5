package domain

// Account is a money account transactions are paid from or received into
// (bank account, cash, card). It is reference data for the ledger; balances
// are not maintained by the reporting engine.
type Account struct {
	AccountID      string `json:"accountID"`
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Currency       string `json:"currency"` // ISO 4217; informational, amounts aggregate in base currency
	Active         bool   `json:"active"`
	AuditFields
}
