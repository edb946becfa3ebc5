package dto

// ExportRequest is the payload for requesting a full-organization export.
type ExportRequest struct {
	Format                    string  `json:"format" binding:"required,oneof=JSON CSV"`
	IncludeDocumentReferences bool    `json:"includeDocumentReferences,omitempty"`
	DateFrom                  *string `json:"dateFrom,omitempty" binding:"omitempty,datetime=2006-01-02"`
	DateTo                    *string `json:"dateTo,omitempty" binding:"omitempty,datetime=2006-01-02"`
}
