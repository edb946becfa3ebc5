package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// DateLayout is the wire format for calendar dates in request payloads.
const DateLayout = "2006-01-02"

// CreateTransactionRequest is the payload for recording a new transaction.
// VendorID applies to EXPENSE transactions, ClientID to INCOME ones.
type CreateTransactionRequest struct {
	Type              domain.TransactionType   `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Status            domain.TransactionStatus `json:"status" binding:"required,oneof=DRAFT POSTED"`
	AmountBase        decimal.Decimal          `json:"amountBase" binding:"required"`
	AmountSecondary   *decimal.Decimal         `json:"amountSecondary,omitempty"`
	CurrencySecondary *string                  `json:"currencySecondary,omitempty" binding:"omitempty,len=3"`
	Date              string                   `json:"date" binding:"required,datetime=2006-01-02"`
	Description       string                   `json:"description"`
	CategoryID        string                   `json:"categoryID" binding:"required"`
	AccountID         string                   `json:"accountID" binding:"required"`
	VendorID          *string                  `json:"vendorID,omitempty"`
	ClientID          *string                  `json:"clientID,omitempty"`
	Tags              []string                 `json:"tags,omitempty" binding:"omitempty,max=10"`
	DocumentRefs      []string                 `json:"documentRefs,omitempty"`

	// AllowSoftClosedOverride permits dating a POSTED transaction inside the
	// organization's soft-closed window.
	AllowSoftClosedOverride bool `json:"allowSoftClosedOverride,omitempty"`
}

// UpdateTransactionRequest is the payload for editing a transaction.
// Nil fields are left unchanged. ClearSecondary removes the secondary
// denomination pair; it cannot be combined with AmountSecondary or
// CurrencySecondary. Editing a POSTED transaction dated before the
// organization's soft-close cutoff requires AllowSoftClosedOverride.
type UpdateTransactionRequest struct {
	Status                  *domain.TransactionStatus `json:"status,omitempty" binding:"omitempty,oneof=DRAFT POSTED"`
	AmountBase              *decimal.Decimal          `json:"amountBase,omitempty"`
	AmountSecondary         *decimal.Decimal          `json:"amountSecondary,omitempty"`
	CurrencySecondary       *string                   `json:"currencySecondary,omitempty" binding:"omitempty,len=3"`
	ClearSecondary          bool                      `json:"clearSecondary,omitempty"`
	Date                    *string                   `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Description             *string                   `json:"description,omitempty"`
	CategoryID              *string                   `json:"categoryID,omitempty"`
	AccountID               *string                   `json:"accountID,omitempty"`
	VendorID                *string                   `json:"vendorID,omitempty"`
	ClientID                *string                   `json:"clientID,omitempty"`
	Tags                    []string                  `json:"tags,omitempty" binding:"omitempty,max=10"`
	DocumentRefs            []string                  `json:"documentRefs,omitempty"`
	AllowSoftClosedOverride bool                      `json:"allowSoftClosedOverride,omitempty"`
}

// ListTransactionsParams carries query filters and pagination for listings.
type ListTransactionsParams struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Type       *domain.TransactionType
	Status     *domain.TransactionStatus
	CategoryID *string
	Limit      int
	NextToken  *string
}

// TransactionResponse is the wire representation of a transaction.
type TransactionResponse struct {
	TransactionID     string           `json:"transactionID"`
	Type              string           `json:"type"`
	Status            string           `json:"status"`
	AmountBase        decimal.Decimal  `json:"amountBase"`
	AmountSecondary   *decimal.Decimal `json:"amountSecondary,omitempty"`
	CurrencySecondary *string          `json:"currencySecondary,omitempty"`
	Date              string           `json:"date"`
	Description       string           `json:"description"`
	CategoryID        string           `json:"categoryID"`
	AccountID         string           `json:"accountID"`
	VendorID          *string          `json:"vendorID,omitempty"`
	ClientID          *string          `json:"clientID,omitempty"`
	Tags              []string         `json:"tags,omitempty"`
	DocumentRefs      []string         `json:"documentRefs,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	LastUpdatedAt     time.Time        `json:"lastUpdatedAt"`
}

// ListTransactionsResponse is a page of transactions plus the next-page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain Transaction to its wire form.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		Type:              string(t.Type),
		Status:            string(t.Status),
		AmountBase:        t.AmountBase,
		AmountSecondary:   t.AmountSecondary,
		CurrencySecondary: t.CurrencySecondary,
		Date:              t.Date.Format(DateLayout),
		Description:       t.Description,
		CategoryID:        t.CategoryID,
		AccountID:         t.AccountID,
		VendorID:          t.VendorID,
		ClientID:          t.ClientID,
		Tags:              t.Tags,
		DocumentRefs:      t.DocumentRefs,
		CreatedAt:         t.CreatedAt,
		LastUpdatedAt:     t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain Transactions to wire form.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(ts))
	for i := range ts {
		responses[i] = ToTransactionResponse(&ts[i])
	}
	return responses
}
