package domain

// CounterpartyKind distinguishes vendors (expense side) from clients (income side).
type CounterpartyKind string

const (
	KindVendor CounterpartyKind = "VENDOR"
	KindClient CounterpartyKind = "CLIENT"
)

// Counterparty is a vendor or client an organization transacts with.
// Counterparties are deactivated rather than deleted so that historical
// transactions keep a resolvable reference; a merge repoints transactions
// from the secondaries onto the primary and deactivates the secondaries.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"`
	OrganizationID string           `json:"organizationID"`
	Kind           CounterpartyKind `json:"kind"`
	Name           string           `json:"name"`
	Email          string           `json:"email,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	Active         bool             `json:"active"`
	MergedIntoID   *string          `json:"mergedIntoID,omitempty"` // Set on secondaries after a merge
	AuditFields
}

// KindForTransactionType maps a transaction type to the counterparty kind it references.
func KindForTransactionType(t TransactionType) CounterpartyKind {
	if t == Expense {
		return KindVendor
	}
	return KindClient
}
