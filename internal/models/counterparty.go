package models

// CounterpartyKind distinguishes vendors from clients.
type CounterpartyKind string

const (
	KindVendor CounterpartyKind = "VENDOR"
	KindClient CounterpartyKind = "CLIENT"
)

// Counterparty is the database representation of a vendor or client.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"`
	OrganizationID string           `json:"organizationID"`
	Kind           CounterpartyKind `json:"kind"`
	Name           string           `json:"name"`
	Email          string           `json:"email,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	Active         bool             `json:"active"`
	MergedIntoID   *string          `json:"mergedIntoID,omitempty"`
	AuditFields
}
