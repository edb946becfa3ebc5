package domain

import "time"

// Organization is the tenant boundary; every ledger entity is scoped to one.
type Organization struct {
	OrganizationID string `json:"organizationID"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	Active         bool   `json:"active"`
	AuditFields
}

// Separator styles for amount formatting in exports and report rendering.
type SeparatorStyle string

const (
	SeparatorDot   SeparatorStyle = "DOT"
	SeparatorComma SeparatorStyle = "COMMA"
	SeparatorSpace SeparatorStyle = "SPACE"
	SeparatorNone  SeparatorStyle = "NONE"
)

// DateFormat selects the rendering of calendar dates in exports.
type DateFormat string

const (
	DateFormatDMY DateFormat = "DD_MM_YYYY"
	DateFormatMDY DateFormat = "MM_DD_YYYY"
	DateFormatYMD DateFormat = "YYYY_MM_DD"
)

// Defaults applied when individual settings fields are unset.
const (
	DefaultBaseCurrency         = "MYR"
	DefaultFiscalYearStartMonth = 1
)

const (
	DefaultDateFormat         = DateFormatDMY
	DefaultDecimalSeparator   = SeparatorDot
	DefaultThousandsSeparator = SeparatorComma
)

// OrganizationSettings is the single per-organization record the reporting
// engine depends on. A missing record is a hard error for reports; missing
// individual fields fall back to the documented defaults.
type OrganizationSettings struct {
	OrganizationID       string         `json:"organizationID"`
	BaseCurrency         string         `json:"baseCurrency"`         // ISO 4217
	FiscalYearStartMonth int            `json:"fiscalYearStartMonth"` // 1-12
	DecimalSeparator     SeparatorStyle `json:"decimalSeparator"`
	ThousandsSeparator   SeparatorStyle `json:"thousandsSeparator"`
	DateFormat           DateFormat     `json:"dateFormat"`
	SoftClosedBefore     *time.Time     `json:"softClosedBefore,omitempty"`
	AuditFields
}

// ApplyDefaults fills unset fields with the documented defaults.
// A missing settings row is still an error; this only covers individually
// null columns on an existing row.
func (s *OrganizationSettings) ApplyDefaults() {
	if s.BaseCurrency == "" {
		s.BaseCurrency = DefaultBaseCurrency
	}
	if s.FiscalYearStartMonth < 1 || s.FiscalYearStartMonth > 12 {
		s.FiscalYearStartMonth = DefaultFiscalYearStartMonth
	}
	if s.DecimalSeparator == "" {
		s.DecimalSeparator = DefaultDecimalSeparator
	}
	if s.ThousandsSeparator == "" {
		s.ThousandsSeparator = DefaultThousandsSeparator
	}
	if s.DateFormat == "" {
		s.DateFormat = DefaultDateFormat
	}
}

// GoLayout returns the time layout string for the configured date format.
func (f DateFormat) GoLayout() string {
	switch f {
	case DateFormatMDY:
		return "01/02/2006"
	case DateFormatYMD:
		return "2006-01-02"
	default:
		return "02/01/2006"
	}
}

// Rune returns the character used for the separator style. The zero rune is
// returned for SeparatorNone.
func (s SeparatorStyle) Rune() rune {
	switch s {
	case SeparatorComma:
		return ','
	case SeparatorSpace:
		return ' '
	case SeparatorNone:
		return 0
	default:
		return '.'
	}
}
