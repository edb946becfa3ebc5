package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
	"github.com/tallybooks/tally_books_app/internal/utils/aggregation"
	"github.com/tallybooks/tally_books_app/internal/utils/fiscal"
)

// reportingService builds the P&L, category and counterparty reports.
// All aggregation happens over amountBase; no currency conversion occurs here.
type reportingService struct {
	BaseService
	settingsSvc      portssvc.SettingsService
	txnRepo          portsrepo.TransactionReader
	categoryRepo     portsrepo.CategoryReader
	counterpartyRepo portsrepo.CounterpartyReader

	now func() time.Time // injectable for tests
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	settingsSvc portssvc.SettingsService,
	txnRepo portsrepo.TransactionReader,
	categoryRepo portsrepo.CategoryReader,
	counterpartyRepo portsrepo.CounterpartyReader,
) portssvc.ReportingService {
	return &reportingService{
		settingsSvc:      settingsSvc,
		txnRepo:          txnRepo,
		categoryRepo:     categoryRepo,
		counterpartyRepo: counterpartyRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// resolvePeriod turns the request's date mode into concrete bounds using the
// organization's fiscal year settings.
func (s *reportingService) resolvePeriod(settings *domain.OrganizationSettings, params dto.ReportParams) (domain.Period, error) {
	if params.DateMode == domain.DateModeCustom {
		if params.CustomFrom == nil || params.CustomTo == nil {
			return domain.Period{}, fmt.Errorf("%w: custom date mode requires from and to", apperrors.ErrValidation)
		}
		from, err := time.ParseInLocation(dto.DateLayout, *params.CustomFrom, time.UTC)
		if err != nil {
			return domain.Period{}, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, *params.CustomFrom)
		}
		to, err := time.ParseInLocation(dto.DateLayout, *params.CustomTo, time.UTC)
		if err != nil {
			return domain.Period{}, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, *params.CustomTo)
		}
		if to.Before(from) {
			return domain.Period{}, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
		}
		return fiscal.Resolve(settings.FiscalYearStartMonth, s.now(), &domain.Period{From: from, To: to}), nil
	}
	return fiscal.Resolve(settings.FiscalYearStartMonth, s.now(), nil), nil
}

func formattingFrom(settings *domain.OrganizationSettings) domain.Formatting {
	return domain.Formatting{
		DecimalSeparator:   settings.DecimalSeparator,
		ThousandsSeparator: settings.ThousandsSeparator,
		DateFormat:         settings.DateFormat,
	}
}

// hierarchy is the validated parent/children view of one organization's
// category forest.
type hierarchy struct {
	byID     map[string]domain.Category
	children map[string][]string
	roots    []string
}

// buildHierarchy constructs parent to children edges and rejects corrupt data
// where walking parentId upward loops.
func buildHierarchy(categories []domain.Category) (*hierarchy, error) {
	h := &hierarchy{
		byID:     make(map[string]domain.Category, len(categories)),
		children: make(map[string][]string),
	}
	for _, c := range categories {
		h.byID[c.CategoryID] = c
	}
	for _, c := range categories {
		if c.ParentID == nil {
			h.roots = append(h.roots, c.CategoryID)
			continue
		}
		if _, ok := h.byID[*c.ParentID]; !ok {
			// A dangling parent reference is treated as top level rather
			// than discarding the branch.
			h.roots = append(h.roots, c.CategoryID)
			continue
		}
		h.children[*c.ParentID] = append(h.children[*c.ParentID], c.CategoryID)
	}

	limit := len(categories) + 1
	for _, c := range categories {
		steps := 0
		current := c
		for current.ParentID != nil {
			steps++
			if steps > limit {
				return nil, fmt.Errorf("%w: category %s reaches itself via its ancestors", apperrors.ErrCycleDetected, c.CategoryID)
			}
			parent, ok := h.byID[*current.ParentID]
			if !ok {
				break
			}
			current = parent
		}
	}

	// Stable child ordering by sortOrder for deterministic traversal.
	for parentID := range h.children {
		ids := h.children[parentID]
		sort.Slice(ids, func(i, j int) bool {
			return h.byID[ids[i]].SortOrder < h.byID[ids[j]].SortOrder
		})
	}
	sort.Slice(h.roots, func(i, j int) bool {
		a, b := h.byID[h.roots[i]], h.byID[h.roots[j]]
		if a.Type != b.Type {
			return a.Type == domain.Income
		}
		return a.SortOrder < b.SortOrder
	})
	return h, nil
}

// level returns the depth of a category under its top-level ancestor.
func (h *hierarchy) level(categoryID string) int {
	level := 0
	current := h.byID[categoryID]
	for current.ParentID != nil {
		parent, ok := h.byID[*current.ParentID]
		if !ok {
			break
		}
		level++
		current = parent
	}
	return level
}

// includedInPnL reports whether the category and every one of its ancestors
// carry the IncludeInPnL flag. Excluding a category removes its whole subtree
// from the P&L, so totals and rows always agree.
func (h *hierarchy) includedInPnL(categoryID string) bool {
	current, ok := h.byID[categoryID]
	if !ok {
		return false
	}
	for {
		if !current.IncludeInPnL {
			return false
		}
		if current.ParentID == nil {
			return true
		}
		parent, ok := h.byID[*current.ParentID]
		if !ok {
			return true
		}
		current = parent
	}
}

// subtree accumulates own plus descendant totals and counts for categoryID.
func (h *hierarchy) subtree(categoryID string, ownTotals map[string]decimal.Decimal, ownCounts map[string]int) (decimal.Decimal, int) {
	total := ownTotals[categoryID]
	count := ownCounts[categoryID]
	for _, childID := range h.children[categoryID] {
		childTotal, childCount := h.subtree(childID, ownTotals, ownCounts)
		total = total.Add(childTotal)
		count += childCount
	}
	return total, count
}

// fetchReportInputs loads settings, resolves the period and then pulls the
// remaining report inputs concurrently.
func (s *reportingService) fetchReportInputs(ctx context.Context, organizationID string, params dto.ReportParams, filters portsrepo.TransactionFilters) (*domain.OrganizationSettings, domain.Period, []domain.Transaction, []domain.Category, error) {
	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		return nil, domain.Period{}, nil, nil, err
	}
	period, err := s.resolvePeriod(settings, params)
	if err != nil {
		return nil, domain.Period{}, nil, nil, err
	}

	filters.DateFrom = &period.From
	filters.DateTo = &period.To

	var (
		txns       []domain.Transaction
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.txnRepo.QueryTransactions(gctx, organizationID, filters)
		if err != nil {
			return fmt.Errorf("failed to query transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.ListCategoriesByOrganization(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domain.Period{}, nil, nil, err
	}
	return settings, period, txns, categories, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, organizationID string, params dto.ReportParams) (*domain.PnLReport, error) {
	status := domain.Posted
	settings, period, txns, categories, err := s.fetchReportInputs(ctx, organizationID, params, portsrepo.TransactionFilters{Status: &status})
	if err != nil {
		s.LogError(ctx, err, "failed to build P&L inputs", slog.String("organization_id", organizationID))
		return nil, err
	}

	h, err := buildHierarchy(categories)
	if err != nil {
		return nil, err
	}

	// P&L inclusion is hierarchical: an excluded category takes its whole
	// subtree with it.
	included := txns[:0:0]
	for _, t := range txns {
		if h.includedInPnL(t.CategoryID) {
			included = append(included, t)
		}
	}

	ownTotals := aggregation.SumBy(included, func(t domain.Transaction) string { return t.CategoryID })
	ownCounts := aggregation.CountBy(included, func(t domain.Transaction) string { return t.CategoryID })

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	for _, t := range included {
		if t.Type == domain.Income {
			totalIncome = totalIncome.Add(t.AmountBase)
		} else {
			totalExpense = totalExpense.Add(t.AmountBase)
		}
	}

	detailLevel := params.DetailLevel
	if detailLevel == "" {
		detailLevel = domain.DetailSummary
	}

	var rows []domain.CategoryAmount
	appendRow := func(c domain.Category) {
		subtreeTotal, subtreeCount := h.subtree(c.CategoryID, ownTotals, ownCounts)
		if subtreeCount == 0 {
			return
		}
		rows = append(rows, domain.CategoryAmount{
			CategoryID:       c.CategoryID,
			Name:             c.Name,
			Type:             c.Type,
			TotalBase:        ownTotals[c.CategoryID],
			SubtreeTotalBase: subtreeTotal,
			TransactionCount: ownCounts[c.CategoryID],
		})
	}

	if detailLevel == domain.DetailSummary {
		// Every leaf rolls up into its top-level ancestor.
		for _, rootID := range h.roots {
			root := h.byID[rootID]
			if !root.IncludeInPnL {
				continue
			}
			subtreeTotal, subtreeCount := h.subtree(rootID, ownTotals, ownCounts)
			if subtreeCount == 0 {
				continue
			}
			rows = append(rows, domain.CategoryAmount{
				CategoryID:       rootID,
				Name:             root.Name,
				Type:             root.Type,
				TotalBase:        subtreeTotal,
				SubtreeTotalBase: subtreeTotal,
				TransactionCount: subtreeCount,
			})
		}
	} else {
		var walk func(id string)
		walk = func(id string) {
			appendRow(h.byID[id])
			for _, childID := range h.children[id] {
				walk(childID)
			}
		}
		for _, rootID := range h.roots {
			walk(rootID)
		}
	}

	return &domain.PnLReport{
		Period:       period,
		Categories:   rows,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Net:          totalIncome.Sub(totalExpense),
		BaseCurrency: settings.BaseCurrency,
		Formatting:   formattingFrom(settings),
	}, nil
}

func (s *reportingService) CategoryReport(ctx context.Context, organizationID string, params dto.ReportParams) (*domain.CategoryReport, error) {
	settings, period, txns, categories, err := s.fetchReportInputs(ctx, organizationID, params, portsrepo.TransactionFilters{Type: params.TypeFilter})
	if err != nil {
		s.LogError(ctx, err, "failed to build category report inputs", slog.String("organization_id", organizationID))
		return nil, err
	}

	h, err := buildHierarchy(categories)
	if err != nil {
		return nil, err
	}

	ownTotals := aggregation.SumBy(txns, func(t domain.Transaction) string { return t.CategoryID })
	ownCounts := aggregation.CountBy(txns, func(t domain.Transaction) string { return t.CategoryID })

	// One row per category regardless of activity; inactive categories stay
	// visible for history.
	var items []domain.CategoryReportRow
	var walk func(id string)
	walk = func(id string) {
		c := h.byID[id]
		if params.TypeFilter == nil || c.Type == *params.TypeFilter {
			items = append(items, domain.CategoryReportRow{
				CategoryID:       c.CategoryID,
				Name:             c.Name,
				Type:             c.Type,
				Level:            h.level(c.CategoryID),
				Active:           c.Active,
				TransactionCount: ownCounts[c.CategoryID],
				TotalBase:        ownTotals[c.CategoryID],
			})
		}
		for _, childID := range h.children[id] {
			walk(childID)
		}
	}
	for _, rootID := range h.roots {
		walk(rootID)
	}

	return &domain.CategoryReport{
		Period:       period,
		Items:        items,
		BaseCurrency: settings.BaseCurrency,
		Formatting:   formattingFrom(settings),
	}, nil
}

func (s *reportingService) CounterpartyReport(ctx context.Context, organizationID string, params dto.ReportParams) (*domain.CounterpartyReport, error) {
	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	period, err := s.resolvePeriod(settings, params)
	if err != nil {
		return nil, err
	}

	var (
		txns           []domain.Transaction
		counterparties []domain.Counterparty
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.txnRepo.QueryTransactions(gctx, organizationID, portsrepo.TransactionFilters{
			DateFrom: &period.From,
			DateTo:   &period.To,
		})
		if err != nil {
			return fmt.Errorf("failed to query transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counterparties, err = s.counterpartyRepo.ListCounterpartiesByOrganization(gctx, organizationID, nil)
		if err != nil {
			return fmt.Errorf("failed to list counterparties: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "failed to build counterparty report inputs", slog.String("organization_id", organizationID))
		return nil, err
	}

	names := make(map[string]string, len(counterparties))
	for _, cp := range counterparties {
		names[cp.CounterpartyID] = cp.Name
	}

	// Transactions without a linked counterparty land in the unknown bucket
	// (empty id) instead of being dropped.
	byCounterparty := make(map[string]*domain.CounterpartyReportRow)
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	for _, t := range txns {
		key := ""
		if id := t.CounterpartyID(); id != nil {
			key = *id
		}
		row, ok := byCounterparty[key]
		if !ok {
			name := names[key]
			if key == "" || name == "" {
				name = domain.UnknownCounterpartyName
			}
			row = &domain.CounterpartyReportRow{
				CounterpartyID:   key,
				Name:             name,
				TotalIncomeBase:  decimal.Zero,
				TotalExpenseBase: decimal.Zero,
			}
			byCounterparty[key] = row
		}
		if t.Type == domain.Income {
			row.TotalIncomeBase = row.TotalIncomeBase.Add(t.AmountBase)
			totalIncome = totalIncome.Add(t.AmountBase)
		} else {
			row.TotalExpenseBase = row.TotalExpenseBase.Add(t.AmountBase)
			totalExpense = totalExpense.Add(t.AmountBase)
		}
		row.TransactionCount++
	}

	rows := make([]domain.CounterpartyReportRow, 0, len(byCounterparty))
	for _, row := range byCounterparty {
		row.NetBase = row.TotalIncomeBase.Sub(row.TotalExpenseBase)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		// Unknown bucket sorts last.
		if (rows[i].CounterpartyID == "") != (rows[j].CounterpartyID == "") {
			return rows[j].CounterpartyID == ""
		}
		return rows[i].Name < rows[j].Name
	})

	return &domain.CounterpartyReport{
		Period:       period,
		Rows:         rows,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Net:          totalIncome.Sub(totalExpense),
		BaseCurrency: settings.BaseCurrency,
		Formatting:   formattingFrom(settings),
	}, nil
}
