package mapping

import (
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/models"
)

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Slug:           m.Slug,
		Name:           m.Name,
		Active:         m.Active,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSettings converts domain OrganizationSettings to its model form
func ToModelSettings(d domain.OrganizationSettings) models.OrganizationSettings {
	return models.OrganizationSettings{
		OrganizationID:       d.OrganizationID,
		BaseCurrency:         d.BaseCurrency,
		FiscalYearStartMonth: d.FiscalYearStartMonth,
		DecimalSeparator:     string(d.DecimalSeparator),
		ThousandsSeparator:   string(d.ThousandsSeparator),
		DateFormat:           string(d.DateFormat),
		SoftClosedBefore:     d.SoftClosedBefore,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSettings converts model OrganizationSettings to its domain form.
// Defaults for unset fields are applied by the caller via ApplyDefaults.
func ToDomainSettings(m models.OrganizationSettings) domain.OrganizationSettings {
	return domain.OrganizationSettings{
		OrganizationID:       m.OrganizationID,
		BaseCurrency:         m.BaseCurrency,
		FiscalYearStartMonth: m.FiscalYearStartMonth,
		DecimalSeparator:     domain.SeparatorStyle(m.DecimalSeparator),
		ThousandsSeparator:   domain.SeparatorStyle(m.ThousandsSeparator),
		DateFormat:           domain.DateFormat(m.DateFormat),
		SoftClosedBefore:     m.SoftClosedBefore,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Currency:       m.Currency,
		Active:         m.Active,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
