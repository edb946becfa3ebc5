package dto

import (
	"time"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// UpdateSettingsRequest is the payload for editing organization settings.
// Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	BaseCurrency         *string    `json:"baseCurrency,omitempty" binding:"omitempty,iso4217"`
	FiscalYearStartMonth *int       `json:"fiscalYearStartMonth,omitempty" binding:"omitempty,min=1,max=12"`
	DecimalSeparator     *string    `json:"decimalSeparator,omitempty" binding:"omitempty,oneof=DOT COMMA"`
	ThousandsSeparator   *string    `json:"thousandsSeparator,omitempty" binding:"omitempty,oneof=DOT COMMA SPACE NONE"`
	DateFormat           *string    `json:"dateFormat,omitempty" binding:"omitempty,oneof=DD_MM_YYYY MM_DD_YYYY YYYY_MM_DD"`
	SoftClosedBefore     *time.Time `json:"softClosedBefore,omitempty"`
}

// SettingsResponse is the wire representation of organization settings.
type SettingsResponse struct {
	OrganizationID       string     `json:"organizationID"`
	BaseCurrency         string     `json:"baseCurrency"`
	FiscalYearStartMonth int        `json:"fiscalYearStartMonth"`
	DecimalSeparator     string     `json:"decimalSeparator"`
	ThousandsSeparator   string     `json:"thousandsSeparator"`
	DateFormat           string     `json:"dateFormat"`
	SoftClosedBefore     *time.Time `json:"softClosedBefore,omitempty"`
}

// ToSettingsResponse converts domain settings to wire form.
func ToSettingsResponse(s *domain.OrganizationSettings) SettingsResponse {
	return SettingsResponse{
		OrganizationID:       s.OrganizationID,
		BaseCurrency:         s.BaseCurrency,
		FiscalYearStartMonth: s.FiscalYearStartMonth,
		DecimalSeparator:     string(s.DecimalSeparator),
		ThousandsSeparator:   string(s.ThousandsSeparator),
		DateFormat:           string(s.DateFormat),
		SoftClosedBefore:     s.SoftClosedBefore,
	}
}
