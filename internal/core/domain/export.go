package domain

import "time"

// ExportFormat selects the backup serialization.
type ExportFormat string

const (
	ExportJSON ExportFormat = "JSON"
	ExportCSV  ExportFormat = "CSV"
)

// ExportOptions controls what an organization backup contains.
// Date bounds apply to transactions only; categories, accounts and
// counterparties are reference data and are always exported in full.
type ExportOptions struct {
	Format                    ExportFormat
	IncludeDocumentReferences bool
	DateFrom                  *time.Time
	DateTo                    *time.Time
}

// ExportResult is a ready-to-download backup artifact.
type ExportResult struct {
	Buffer      []byte
	ContentType string
	Filename    string
}

// ExportMetadata describes a backup document.
type ExportMetadata struct {
	GeneratedAt      time.Time  `json:"generatedAt"`
	OrganizationSlug string     `json:"organizationSlug"`
	DateFrom         *time.Time `json:"dateFrom,omitempty"`
	DateTo           *time.Time `json:"dateTo,omitempty"`
}
