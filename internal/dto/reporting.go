package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// ReportParams carries the reporting window and detail options parsed from
// query parameters. When DateMode is FISCAL_YEAR the custom bounds are ignored
// and the window is the fiscal year to date.
type ReportParams struct {
	DateMode    domain.DateMode
	CustomFrom  *string
	CustomTo    *string
	DetailLevel domain.DetailLevel
	TypeFilter  *domain.TransactionType
}

// PeriodResponse is the resolved reporting window.
type PeriodResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FormattingResponse echoes the organization's display preferences so clients
// can render amounts and dates consistently.
type FormattingResponse struct {
	DecimalSeparator   string `json:"decimalSeparator"`
	ThousandsSeparator string `json:"thousandsSeparator"`
	DateFormat         string `json:"dateFormat"`
}

// CategoryAmountResponse is one category line of a profit and loss report.
type CategoryAmountResponse struct {
	CategoryID       string          `json:"categoryID"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	TotalBase        decimal.Decimal `json:"totalBase"`
	SubtreeTotalBase decimal.Decimal `json:"subtreeTotalBase"`
	TransactionCount int             `json:"transactionCount"`
	FormattedTotal   string          `json:"formattedTotal"`
}

// PnLResponse is the wire representation of a profit and loss report.
type PnLResponse struct {
	Period       PeriodResponse           `json:"period"`
	Categories   []CategoryAmountResponse `json:"categories"`
	TotalIncome  decimal.Decimal          `json:"totalIncome"`
	TotalExpense decimal.Decimal          `json:"totalExpense"`
	Net          decimal.Decimal          `json:"net"`
	BaseCurrency string                   `json:"baseCurrency"`
	Formatting   FormattingResponse       `json:"formatting"`
}

// CategoryReportRowResponse is one row of the per-category breakdown.
type CategoryReportRowResponse struct {
	CategoryID       string          `json:"categoryID"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Level            int             `json:"level"`
	Active           bool            `json:"active"`
	TransactionCount int             `json:"transactionCount"`
	TotalBase        decimal.Decimal `json:"totalBase"`
	FormattedTotal   string          `json:"formattedTotal"`
}

// CategoryReportResponse is the wire representation of a category report.
type CategoryReportResponse struct {
	Period       PeriodResponse              `json:"period"`
	Items        []CategoryReportRowResponse `json:"items"`
	BaseCurrency string                      `json:"baseCurrency"`
	Formatting   FormattingResponse          `json:"formatting"`
}

// CounterpartyReportRowResponse is one row of the vendor/client report.
type CounterpartyReportRowResponse struct {
	CounterpartyID   string          `json:"counterpartyID"`
	Name             string          `json:"name"`
	TotalIncomeBase  decimal.Decimal `json:"totalIncomeBase"`
	TotalExpenseBase decimal.Decimal `json:"totalExpenseBase"`
	NetBase          decimal.Decimal `json:"netBase"`
	TransactionCount int             `json:"transactionCount"`
	FormattedNet     string          `json:"formattedNet"`
}

// CounterpartyReportResponse is the wire representation of the vendor/client
// report.
type CounterpartyReportResponse struct {
	Period       PeriodResponse                  `json:"period"`
	Rows         []CounterpartyReportRowResponse `json:"rows"`
	TotalIncome  decimal.Decimal                 `json:"totalIncome"`
	TotalExpense decimal.Decimal                 `json:"totalExpense"`
	Net          decimal.Decimal                 `json:"net"`
	BaseCurrency string                          `json:"baseCurrency"`
	Formatting   FormattingResponse              `json:"formatting"`
}

func toPeriodResponse(p domain.Period) PeriodResponse {
	return PeriodResponse{
		From: p.From.Format(DateLayout),
		To:   p.To.Format(DateLayout),
	}
}

func toFormattingResponse(f domain.Formatting) FormattingResponse {
	return FormattingResponse{
		DecimalSeparator:   string(f.DecimalSeparator),
		ThousandsSeparator: string(f.ThousandsSeparator),
		DateFormat:         string(f.DateFormat),
	}
}

// ToPnLResponse converts a domain PnLReport to its wire form. Amounts are
// additionally rendered with the organization's separator preferences.
func ToPnLResponse(r *domain.PnLReport, format func(decimal.Decimal) string) PnLResponse {
	categories := make([]CategoryAmountResponse, len(r.Categories))
	for i, ca := range r.Categories {
		categories[i] = CategoryAmountResponse{
			CategoryID:       ca.CategoryID,
			Name:             ca.Name,
			Type:             string(ca.Type),
			TotalBase:        ca.TotalBase,
			SubtreeTotalBase: ca.SubtreeTotalBase,
			TransactionCount: ca.TransactionCount,
			FormattedTotal:   format(ca.SubtreeTotalBase),
		}
	}
	return PnLResponse{
		Period:       toPeriodResponse(r.Period),
		Categories:   categories,
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		Net:          r.Net,
		BaseCurrency: r.BaseCurrency,
		Formatting:   toFormattingResponse(r.Formatting),
	}
}

// ToCategoryReportResponse converts a domain CategoryReport to its wire form.
func ToCategoryReportResponse(r *domain.CategoryReport, format func(decimal.Decimal) string) CategoryReportResponse {
	items := make([]CategoryReportRowResponse, len(r.Items))
	for i, row := range r.Items {
		items[i] = CategoryReportRowResponse{
			CategoryID:       row.CategoryID,
			Name:             row.Name,
			Type:             string(row.Type),
			Level:            row.Level,
			Active:           row.Active,
			TransactionCount: row.TransactionCount,
			TotalBase:        row.TotalBase,
			FormattedTotal:   format(row.TotalBase),
		}
	}
	return CategoryReportResponse{
		Period:       toPeriodResponse(r.Period),
		Items:        items,
		BaseCurrency: r.BaseCurrency,
		Formatting:   toFormattingResponse(r.Formatting),
	}
}

// ToCounterpartyReportResponse converts a domain CounterpartyReport to its
// wire form.
func ToCounterpartyReportResponse(r *domain.CounterpartyReport, format func(decimal.Decimal) string) CounterpartyReportResponse {
	rows := make([]CounterpartyReportRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = CounterpartyReportRowResponse{
			CounterpartyID:   row.CounterpartyID,
			Name:             row.Name,
			TotalIncomeBase:  row.TotalIncomeBase,
			TotalExpenseBase: row.TotalExpenseBase,
			NetBase:          row.NetBase,
			TransactionCount: row.TransactionCount,
			FormattedNet:     format(row.NetBase),
		}
	}
	return CounterpartyReportResponse{
		Period:       toPeriodResponse(r.Period),
		Rows:         rows,
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		Net:          r.Net,
		BaseCurrency: r.BaseCurrency,
		Formatting:   toFormattingResponse(r.Formatting),
	}
}
