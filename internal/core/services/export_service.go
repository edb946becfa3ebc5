package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/utils"
)

// exportPageSize bounds how many transactions are held in memory per fetch
// while streaming an organization's history into a backup.
const exportPageSize = 500

// exportService builds full-organization backups.
type exportService struct {
	BaseService
	orgRepo          portsrepo.OrganizationReader
	settingsSvc      portssvc.SettingsService
	txnRepo          portsrepo.TransactionReader
	categoryRepo     portsrepo.CategoryReader
	counterpartyRepo portsrepo.CounterpartyReader
	accountRepo      portsrepo.AccountReader

	now func() time.Time // injectable for tests
}

// NewExportService creates a new ExportService.
func NewExportService(
	orgRepo portsrepo.OrganizationReader,
	settingsSvc portssvc.SettingsService,
	txnRepo portsrepo.TransactionReader,
	categoryRepo portsrepo.CategoryReader,
	counterpartyRepo portsrepo.CounterpartyReader,
	accountRepo portsrepo.AccountReader,
) portssvc.ExportService {
	return &exportService{
		orgRepo:          orgRepo,
		settingsSvc:      settingsSvc,
		txnRepo:          txnRepo,
		categoryRepo:     categoryRepo,
		counterpartyRepo: counterpartyRepo,
		accountRepo:      accountRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.ExportService = (*exportService)(nil)

// exportBundle is everything a backup contains, pulled once and rendered into
// whichever format was requested.
type exportBundle struct {
	Metadata     domain.ExportMetadata        `json:"metadata"`
	Settings     *domain.OrganizationSettings `json:"settings"`
	Transactions []domain.Transaction         `json:"transactions"`
	Categories   []domain.Category            `json:"categories"`
	Accounts     []domain.Account             `json:"accounts"`
	Vendors      []domain.Counterparty        `json:"vendors"`
	Clients      []domain.Counterparty        `json:"clients"`
}

func (s *exportService) Export(ctx context.Context, organizationID string, opts domain.ExportOptions) (*domain.ExportResult, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	bundle := exportBundle{
		Metadata: domain.ExportMetadata{
			GeneratedAt:      s.now(),
			OrganizationSlug: org.Slug,
			DateFrom:         opts.DateFrom,
			DateTo:           opts.DateTo,
		},
		Settings: settings,
	}

	// Reference data is small and independent; fetch it concurrently while
	// transactions page through below.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bundle.Categories, err = s.categoryRepo.ListCategoriesByOrganization(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bundle.Accounts, err = s.accountRepo.ListAccountsByOrganization(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		counterparties, err := s.counterpartyRepo.ListCounterpartiesByOrganization(gctx, organizationID, nil)
		if err != nil {
			return fmt.Errorf("failed to list counterparties: %w", err)
		}
		for _, cp := range counterparties {
			if cp.Kind == domain.KindVendor {
				bundle.Vendors = append(bundle.Vendors, cp)
			} else {
				bundle.Clients = append(bundle.Clients, cp)
			}
		}
		return nil
	})
	g.Go(func() error {
		txns, err := s.fetchAllTransactions(gctx, organizationID, opts)
		if err != nil {
			return err
		}
		bundle.Transactions = txns
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "failed to collect export data", slog.String("organization_id", organizationID))
		return nil, err
	}

	if !opts.IncludeDocumentReferences {
		for i := range bundle.Transactions {
			bundle.Transactions[i].DocumentRefs = nil
		}
	}

	var result *domain.ExportResult
	switch opts.Format {
	case domain.ExportJSON:
		result, err = s.renderJSON(org.Slug, &bundle)
	case domain.ExportCSV:
		result, err = s.renderCSVArchive(org.Slug, settings, &bundle, opts.IncludeDocumentReferences)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", apperrors.ErrValidation, opts.Format)
	}
	if err != nil {
		s.LogError(ctx, err, "failed to render export", slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "export generated",
		slog.String("organization_id", organizationID),
		slog.String("format", string(opts.Format)),
		slog.Int("transaction_count", len(bundle.Transactions)),
		slog.Int("size_bytes", len(result.Buffer)),
	)
	return result, nil
}

// fetchAllTransactions pages through the organization's transactions instead
// of materializing the full history in one query.
func (s *exportService) fetchAllTransactions(ctx context.Context, organizationID string, opts domain.ExportOptions) ([]domain.Transaction, error) {
	filters := portsrepo.TransactionFilters{
		DateFrom: opts.DateFrom,
		DateTo:   opts.DateTo,
	}
	var all []domain.Transaction
	var token *string
	for {
		page, next, err := s.txnRepo.ListTransactions(ctx, organizationID, filters, exportPageSize, token)
		if err != nil {
			return nil, fmt.Errorf("failed to page transactions: %w", err)
		}
		all = append(all, page...)
		if next == nil {
			return all, nil
		}
		token = next
	}
}

func (s *exportService) renderJSON(slug string, bundle *exportBundle) (*domain.ExportResult, error) {
	buf, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export document: %w", err)
	}
	return &domain.ExportResult{
		Buffer:      buf,
		ContentType: "application/json",
		Filename:    exportFilename(slug, bundle.Metadata.GeneratedAt, "json"),
	}, nil
}

// CSV row shapes. Amounts and dates are rendered with the organization's
// display preferences, matching what users see in the app.
type transactionCSVRow struct {
	TransactionID     string `csv:"transaction_id"`
	Type              string `csv:"type"`
	Status            string `csv:"status"`
	Date              string `csv:"date"`
	AmountBase        string `csv:"amount_base"`
	AmountSecondary   string `csv:"amount_secondary"`
	CurrencySecondary string `csv:"currency_secondary"`
	Description       string `csv:"description"`
	CategoryID        string `csv:"category_id"`
	AccountID         string `csv:"account_id"`
	CounterpartyID    string `csv:"counterparty_id"`
	Tags              string `csv:"tags"`
	DocumentRefs      string `csv:"document_refs,omitempty"`
}

type categoryCSVRow struct {
	CategoryID   string `csv:"category_id"`
	Name         string `csv:"name"`
	Type         string `csv:"type"`
	ParentID     string `csv:"parent_id"`
	IncludeInPnL bool   `csv:"include_in_pnl"`
	Active       bool   `csv:"active"`
	SortOrder    int    `csv:"sort_order"`
}

type accountCSVRow struct {
	AccountID string `csv:"account_id"`
	Name      string `csv:"name"`
	Currency  string `csv:"currency"`
	Active    bool   `csv:"active"`
}

type counterpartyCSVRow struct {
	CounterpartyID string `csv:"counterparty_id"`
	Name           string `csv:"name"`
	Email          string `csv:"email"`
	Notes          string `csv:"notes"`
	Active         bool   `csv:"active"`
	MergedIntoID   string `csv:"merged_into_id"`
}

func (s *exportService) renderCSVArchive(slug string, settings *domain.OrganizationSettings, bundle *exportBundle, includeDocRefs bool) (*domain.ExportResult, error) {
	txnRows := make([]transactionCSVRow, len(bundle.Transactions))
	for i, t := range bundle.Transactions {
		row := transactionCSVRow{
			TransactionID:     t.TransactionID,
			Type:              string(t.Type),
			Status:            string(t.Status),
			Date:              utils.FormatDate(t.Date, settings.DateFormat),
			AmountBase:        utils.FormatAmount(t.AmountBase, settings.DecimalSeparator, settings.ThousandsSeparator),
			CurrencySecondary: strValue(t.CurrencySecondary),
			Description:       t.Description,
			CategoryID:        t.CategoryID,
			AccountID:         t.AccountID,
			CounterpartyID:    strValue(t.CounterpartyID()),
			Tags:              strings.Join(t.Tags, ";"),
		}
		if t.AmountSecondary != nil {
			row.AmountSecondary = utils.FormatAmount(*t.AmountSecondary, settings.DecimalSeparator, settings.ThousandsSeparator)
		}
		if includeDocRefs {
			row.DocumentRefs = strings.Join(t.DocumentRefs, ";")
		}
		txnRows[i] = row
	}

	categoryRows := make([]categoryCSVRow, len(bundle.Categories))
	for i, c := range bundle.Categories {
		categoryRows[i] = categoryCSVRow{
			CategoryID:   c.CategoryID,
			Name:         c.Name,
			Type:         string(c.Type),
			ParentID:     strValue(c.ParentID),
			IncludeInPnL: c.IncludeInPnL,
			Active:       c.Active,
			SortOrder:    c.SortOrder,
		}
	}

	accountRows := make([]accountCSVRow, len(bundle.Accounts))
	for i, a := range bundle.Accounts {
		accountRows[i] = accountCSVRow{
			AccountID: a.AccountID,
			Name:      a.Name,
			Currency:  a.Currency,
			Active:    a.Active,
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name string
		rows any
	}{
		{"transactions.csv", &txnRows},
		{"categories.csv", &categoryRows},
		{"accounts.csv", &accountRows},
		{"vendors.csv", counterpartyRowsFor(bundle.Vendors)},
		{"clients.csv", counterpartyRowsFor(bundle.Clients)},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", f.name, err)
		}
		content, err := gocsv.MarshalString(f.rows)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", f.name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	// Metadata travels in the archive as a small JSON sidecar.
	metaWriter, err := zw.Create("metadata.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata entry: %w", err)
	}
	metaJSON, err := json.MarshalIndent(bundle.Metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if _, err := metaWriter.Write(metaJSON); err != nil {
		return nil, fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return &domain.ExportResult{
		Buffer:      buf.Bytes(),
		ContentType: "application/zip",
		Filename:    exportFilename(slug, bundle.Metadata.GeneratedAt, "zip"),
	}, nil
}

func counterpartyRowsFor(cps []domain.Counterparty) *[]counterpartyCSVRow {
	rows := make([]counterpartyCSVRow, len(cps))
	for i, cp := range cps {
		rows[i] = counterpartyCSVRow{
			CounterpartyID: cp.CounterpartyID,
			Name:           cp.Name,
			Email:          cp.Email,
			Notes:          cp.Notes,
			Active:         cp.Active,
			MergedIntoID:   strValue(cp.MergedIntoID),
		}
	}
	return &rows
}

func exportFilename(slug string, generatedAt time.Time, ext string) string {
	return fmt.Sprintf("%s_export_%s.%s", slug, generatedAt.Format("20060102_150405"), ext)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
