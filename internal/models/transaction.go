package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction records income or an expense.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionStatus distinguishes draft entries from posted ones.
type TransactionStatus string

const (
	Draft  TransactionStatus = "DRAFT"
	Posted TransactionStatus = "POSTED"
)

// Transaction is the database representation of a ledger entry.
// AmountBase is stored as NUMERIC in the organization's base currency.
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
	VendorID          *string           `json:"vendorID,omitempty"`
	ClientID          *string           `json:"clientID,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	DocumentRefs      []string          `json:"documentRefs,omitempty"`
	DeletedAt         *time.Time        `json:"deletedAt,omitempty"`
	AuditFields
}
