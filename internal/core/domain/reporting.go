package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetailLevel controls how category totals are grouped in a P&L report.
// Summary folds every category into its top-level ancestor; Detailed reports
// each category's own totals plus its subtree total.
type DetailLevel string

const (
	DetailSummary  DetailLevel = "SUMMARY"
	DetailDetailed DetailLevel = "DETAILED"
)

// DateMode selects between fiscal year-to-date and caller-supplied bounds.
type DateMode string

const (
	DateModeFiscalYear DateMode = "FISCAL_YEAR"
	DateModeCustom     DateMode = "CUSTOM"
)

// Period is a resolved inclusive date range.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// CategoryAmount is one grouped line in a P&L report.
type CategoryAmount struct {
	CategoryID       string          `json:"categoryID"`
	Name             string          `json:"name"`
	Type             TransactionType `json:"type"`
	TotalBase        decimal.Decimal `json:"totalBase"`
	SubtreeTotalBase decimal.Decimal `json:"subtreeTotalBase"` // Equals TotalBase at summary level
	TransactionCount int             `json:"transactionCount"`
}

// Formatting carries the organization's display preferences alongside report
// data so callers can render amounts and dates without a second settings fetch.
type Formatting struct {
	DecimalSeparator   SeparatorStyle `json:"decimalSeparator"`
	ThousandsSeparator SeparatorStyle `json:"thousandsSeparator"`
	DateFormat         DateFormat     `json:"dateFormat"`
}

// PnLReport is the result of a profit and loss computation.
type PnLReport struct {
	Period       Period           `json:"period"`
	Categories   []CategoryAmount `json:"categories"`
	TotalIncome  decimal.Decimal  `json:"totalIncome"`
	TotalExpense decimal.Decimal  `json:"totalExpense"`
	Net          decimal.Decimal  `json:"net"` // TotalIncome - TotalExpense
	BaseCurrency string           `json:"baseCurrency"`
	Formatting   Formatting       `json:"formatting"`
}

// CategoryReportRow is one row of the per-category breakdown. Level is the
// depth under the top-level ancestor (0 for top-level) and exists for
// indentation; ordering is a presentation concern.
type CategoryReportRow struct {
	CategoryID       string          `json:"categoryID"`
	Name             string          `json:"name"`
	Type             TransactionType `json:"type"`
	Level            int             `json:"level"`
	Active           bool            `json:"active"`
	TransactionCount int             `json:"transactionCount"`
	TotalBase        decimal.Decimal `json:"totalBase"`
}

// CategoryReport wraps the per-category rows with the resolved period and
// the settings needed for display.
type CategoryReport struct {
	Period       Period              `json:"period"`
	Items        []CategoryReportRow `json:"items"`
	BaseCurrency string              `json:"baseCurrency"`
	Formatting   Formatting          `json:"formatting"`
}

// CounterpartyReportRow aggregates both sides of a counterparty relationship.
// A counterparty with only one side of activity carries an explicit zero on
// the other. Rows with no linked counterparty are grouped under an empty
// CounterpartyID with the unknown label.
type CounterpartyReportRow struct {
	CounterpartyID   string          `json:"counterpartyID"`
	Name             string          `json:"name"`
	TotalIncomeBase  decimal.Decimal `json:"totalIncomeBase"`
	TotalExpenseBase decimal.Decimal `json:"totalExpenseBase"`
	NetBase          decimal.Decimal `json:"netBase"` // TotalIncomeBase - TotalExpenseBase
	TransactionCount int             `json:"transactionCount"`
}

// UnknownCounterpartyName labels the bucket for transactions without a linked
// vendor or client.
const UnknownCounterpartyName = "Unknown"

// CounterpartyReport wraps the per-counterparty rows with computed totals.
type CounterpartyReport struct {
	Period       Period                  `json:"period"`
	Rows         []CounterpartyReportRow `json:"rows"`
	TotalIncome  decimal.Decimal         `json:"totalIncome"`
	TotalExpense decimal.Decimal         `json:"totalExpense"`
	Net          decimal.Decimal         `json:"net"`
	BaseCurrency string                  `json:"baseCurrency"`
	Formatting   Formatting              `json:"formatting"`
}
