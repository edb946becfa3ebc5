package models

import "time"

// Organization is the database representation of a tenant.
type Organization struct {
	OrganizationID string `json:"organizationID"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	Active         bool   `json:"active"`
	AuditFields
}

// OrganizationSettings is the single per-organization settings row.
// Nullable columns map to empty strings / zero here; defaults are applied at
// the domain layer, not in storage.
type OrganizationSettings struct {
	OrganizationID       string     `json:"organizationID"`
	BaseCurrency         string     `json:"baseCurrency"`
	FiscalYearStartMonth int        `json:"fiscalYearStartMonth"`
	DecimalSeparator     string     `json:"decimalSeparator"`
	ThousandsSeparator   string     `json:"thousandsSeparator"`
	DateFormat           string     `json:"dateFormat"`
	SoftClosedBefore     *time.Time `json:"softClosedBefore,omitempty"`
	AuditFields
}
