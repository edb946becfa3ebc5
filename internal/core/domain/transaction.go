package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction records money coming in or going out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionStatus distinguishes provisional entries from booked ones.
// Only POSTED transactions feed official reports.
type TransactionStatus string

const (
	Draft  TransactionStatus = "DRAFT"
	Posted TransactionStatus = "POSTED"
)

// MaxTagsPerTransaction caps the number of tag references on a single transaction.
const MaxTagsPerTransaction = 10

// Transaction represents a single financial event in an organization's ledger.
// AmountBase is always denominated in the organization's base currency and is
// the only value aggregation ever reads. When the transaction was originally
// entered in another currency, AmountSecondary/CurrencySecondary record that
// original denomination; the pair is both-present or both-absent.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	OrganizationID    string            `json:"organizationID"`
	Type              TransactionType   `json:"type"`
	Status            TransactionStatus `json:"status"`
	AmountBase        decimal.Decimal   `json:"amountBase"`
	AmountSecondary   *decimal.Decimal  `json:"amountSecondary,omitempty"`
	CurrencySecondary *string           `json:"currencySecondary,omitempty"`
	Date              time.Time         `json:"date"`
	Description       string            `json:"description"`
	CategoryID        string            `json:"categoryID"`
	AccountID         string            `json:"accountID"`
	VendorID          *string           `json:"vendorID,omitempty"` // Set for EXPENSE transactions
	ClientID          *string           `json:"clientID,omitempty"` // Set for INCOME transactions
	Tags              []string          `json:"tags,omitempty"`
	DocumentRefs      []string          `json:"documentRefs,omitempty"` // Receipt/invoice references held by the document store
	DeletedAt         *time.Time        `json:"deletedAt,omitempty"`    // Soft delete marker; the engine never hard-deletes
	AuditFields
}

// IsDeleted reports whether the transaction has been soft-deleted.
func (t Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// CounterpartyID returns the vendor or client reference depending on the
// transaction type, or nil when no counterparty is linked.
func (t Transaction) CounterpartyID() *string {
	if t.Type == Expense {
		return t.VendorID
	}
	return t.ClientID
}
