package services

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// ReportingService defines the read-only report builders. Every report
// aggregates base-currency amounts only and resolves its window through the
// organization's fiscal year settings.
type ReportingService interface {
	// ProfitAndLoss builds the P&L for the resolved window. Only POSTED
	// transactions in categories flagged for P&L inclusion contribute.
	ProfitAndLoss(ctx context.Context, organizationID string, params dto.ReportParams) (*domain.PnLReport, error)

	// CategoryReport builds the per-category breakdown, including inactive
	// and excluded-from-P&L categories.
	CategoryReport(ctx context.Context, organizationID string, params dto.ReportParams) (*domain.CategoryReport, error)

	// CounterpartyReport builds the vendor/client breakdown. Transactions
	// without a counterparty are grouped under an "Unknown" row.
	CounterpartyReport(ctx context.Context, organizationID string, params dto.ReportParams) (*domain.CounterpartyReport, error)
}
