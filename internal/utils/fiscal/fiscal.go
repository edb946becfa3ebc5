// Package fiscal computes fiscal-period date ranges from an organization's
// fiscal year start month.
package fiscal

import (
	"time"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// Resolve returns the reporting period for the given fiscal year start month.
// Explicit bounds, when provided, are used verbatim (the caller guarantees
// from <= to). Otherwise the range is fiscal year-to-date: from the most
// recent occurrence of the fiscal start date up to today, inclusive.
// A start month of 1 degenerates to calendar YTD.
func Resolve(fiscalYearStartMonth int, today time.Time, explicit *domain.Period) domain.Period {
	if explicit != nil {
		return *explicit
	}
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = domain.DefaultFiscalYearStartMonth
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	start := time.Date(today.Year(), time.Month(fiscalYearStartMonth), 1, 0, 0, 0, 0, today.Location())
	if today.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	return domain.Period{From: start, To: day}
}

// YearFor returns the fiscal year a date belongs to, labelled by the calendar
// year the fiscal year starts in.
func YearFor(fiscalYearStartMonth int, date time.Time) int {
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = domain.DefaultFiscalYearStartMonth
	}
	if int(date.Month()) < fiscalYearStartMonth {
		return date.Year() - 1
	}
	return date.Year()
}
