package mapping

import (
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		OrganizationID:    d.OrganizationID,
		Type:              models.TransactionType(d.Type),
		Status:            models.TransactionStatus(d.Status),
		AmountBase:        d.AmountBase,
		AmountSecondary:   d.AmountSecondary,
		CurrencySecondary: d.CurrencySecondary,
		Date:              d.Date,
		Description:       d.Description,
		CategoryID:        d.CategoryID,
		AccountID:         d.AccountID,
		VendorID:          d.VendorID,
		ClientID:          d.ClientID,
		Tags:              d.Tags,
		DocumentRefs:      d.DocumentRefs,
		DeletedAt:         d.DeletedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		OrganizationID:    m.OrganizationID,
		Type:              domain.TransactionType(m.Type),
		Status:            domain.TransactionStatus(m.Status),
		AmountBase:        m.AmountBase,
		AmountSecondary:   m.AmountSecondary,
		CurrencySecondary: m.CurrencySecondary,
		Date:              m.Date,
		Description:       m.Description,
		CategoryID:        m.CategoryID,
		AccountID:         m.AccountID,
		VendorID:          m.VendorID,
		ClientID:          m.ClientID,
		Tags:              m.Tags,
		DocumentRefs:      m.DocumentRefs,
		DeletedAt:         m.DeletedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
