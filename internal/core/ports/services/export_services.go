package services

import (
	"context"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// ExportService produces full-organization data exports.
type ExportService interface {
	// Export bundles the organization's data in the requested format: a
	// single JSON document, or a zip archive of CSV files.
	Export(ctx context.Context, organizationID string, opts domain.ExportOptions) (*domain.ExportResult, error)
}
