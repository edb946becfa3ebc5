package mapping

import (
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/models"
)

// ToModelCounterparty converts a domain Counterparty to a model Counterparty
func ToModelCounterparty(d domain.Counterparty) models.Counterparty {
	return models.Counterparty{
		CounterpartyID: d.CounterpartyID,
		OrganizationID: d.OrganizationID,
		Kind:           models.CounterpartyKind(d.Kind),
		Name:           d.Name,
		Email:          d.Email,
		Notes:          d.Notes,
		Active:         d.Active,
		MergedIntoID:   d.MergedIntoID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCounterparty converts a model Counterparty to a domain Counterparty
func ToDomainCounterparty(m models.Counterparty) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: m.CounterpartyID,
		OrganizationID: m.OrganizationID,
		Kind:           domain.CounterpartyKind(m.Kind),
		Name:           m.Name,
		Email:          m.Email,
		Notes:          m.Notes,
		Active:         m.Active,
		MergedIntoID:   m.MergedIntoID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCounterpartySlice converts a slice of model Counterparties to domain Counterparties
func ToDomainCounterpartySlice(ms []models.Counterparty) []domain.Counterparty {
	ds := make([]domain.Counterparty, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCounterparty(m)
	}
	return ds
}
