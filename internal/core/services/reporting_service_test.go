package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/core/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockSettingsSvc *MockSettingsService
	mockTxnRepo     *MockTransactionRepository
	mockCatRepo     *MockCategoryRepository
	mockCpRepo      *MockCounterpartyRepository
	service         portssvc.ReportingService

	orgID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockSettingsSvc = new(MockSettingsService)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCatRepo = new(MockCategoryRepository)
	suite.mockCpRepo = new(MockCounterpartyRepository)
	suite.service = services.NewReportingService(suite.mockSettingsSvc, suite.mockTxnRepo, suite.mockCatRepo, suite.mockCpRepo)

	suite.orgID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) settings() *domain.OrganizationSettings {
	return &domain.OrganizationSettings{
		OrganizationID:       suite.orgID,
		BaseCurrency:         "MYR",
		FiscalYearStartMonth: 1,
		DecimalSeparator:     domain.SeparatorDot,
		ThousandsSeparator:   domain.SeparatorComma,
		DateFormat:           domain.DateFormatDMY,
	}
}

// customMarch is a fixed custom reporting window so tests never depend on the
// wall clock.
func customMarch() dto.ReportParams {
	from := "2026-03-01"
	to := "2026-03-31"
	return dto.ReportParams{
		DateMode:   domain.DateModeCustom,
		CustomFrom: &from,
		CustomTo:   &to,
	}
}

func postedTxn(orgID, categoryID string, txnType domain.TransactionType, amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: orgID,
		Type:           txnType,
		Status:         domain.Posted,
		AmountBase:     decimal.NewFromInt(amount),
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CategoryID:     categoryID,
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_MissingSettings() {
	ctx := context.Background()

	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(nil, apperrors.ErrSettingsNotFound).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.orgID, customMarch())

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrSettingsNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "QueryTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_CustomFromAfterTo() {
	ctx := context.Background()
	from := "2026-03-31"
	to := "2026-03-01"
	params := dto.ReportParams{DateMode: domain.DateModeCustom, CustomFrom: &from, CustomTo: &to}

	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(suite.settings(), nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.orgID, params)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_SummaryRollsUpAndExcludes() {
	ctx := context.Background()
	rootID := uuid.NewString()
	childID := uuid.NewString()
	excludedID := uuid.NewString()

	categories := []domain.Category{
		{CategoryID: rootID, OrganizationID: suite.orgID, Name: "Operations", Type: domain.Expense, IncludeInPnL: true, Active: true},
		{CategoryID: childID, OrganizationID: suite.orgID, Name: "Rent", Type: domain.Expense, ParentID: &rootID, IncludeInPnL: true, Active: true},
		{CategoryID: excludedID, OrganizationID: suite.orgID, Name: "Owner Drawings", Type: domain.Expense, IncludeInPnL: false, Active: true},
	}
	txns := []domain.Transaction{
		postedTxn(suite.orgID, rootID, domain.Expense, 100),
		postedTxn(suite.orgID, childID, domain.Expense, 40),
		postedTxn(suite.orgID, excludedID, domain.Expense, 999),
	}

	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(suite.settings(), nil).Once()
	suite.mockTxnRepo.On("QueryTransactions", mock.Anything, suite.orgID, mock.MatchedBy(func(f portsrepo.TransactionFilters) bool {
		return f.Status != nil && *f.Status == domain.Posted
	})).Return(txns, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByOrganization", mock.Anything, suite.orgID).Return(categories, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.orgID, customMarch())

	suite.Require().NoError(err)
	suite.Require().NotNil(report)

	// The excluded category's activity is invisible to the P&L.
	suite.True(report.TotalExpense.Equal(decimal.NewFromInt(140)))
	suite.True(report.TotalIncome.IsZero())
	suite.True(report.Net.Equal(decimal.NewFromInt(-140)))

	// Summary level: one rolled-up row for the root, none for the excluded category.
	suite.Require().Len(report.Categories, 1)
	suite.Equal(rootID, report.Categories[0].CategoryID)
	suite.True(report.Categories[0].SubtreeTotalBase.Equal(decimal.NewFromInt(140)))
	suite.Equal(2, report.Categories[0].TransactionCount)

	suite.Equal("MYR", report.BaseCurrency)
	suite.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), report.Period.From)
	suite.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), report.Period.To)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ExcludedRootRemovesChildActivity() {
	ctx := context.Background()
	excludedRootID := uuid.NewString()
	childID := uuid.NewString()

	categories := []domain.Category{
		{CategoryID: excludedRootID, OrganizationID: suite.orgID, Name: "Owner Drawings", Type: domain.Expense, IncludeInPnL: false, Active: true},
		{CategoryID: childID, OrganizationID: suite.orgID, Name: "Personal Car", Type: domain.Expense, ParentID: &excludedRootID, IncludeInPnL: true, Active: true},
	}
	txns := []domain.Transaction{
		postedTxn(suite.orgID, childID, domain.Expense, 50),
	}

	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(suite.settings(), nil).Once()
	suite.mockTxnRepo.On("QueryTransactions", mock.Anything, suite.orgID, mock.Anything).Return(txns, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByOrganization", mock.Anything, suite.orgID).Return(categories, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.orgID, customMarch())

	suite.Require().NoError(err)
	suite.Require().NotNil(report)

	// The child inherits its root's exclusion, so neither totals nor rows
	// see its activity.
	suite.True(report.TotalExpense.IsZero())
	suite.True(report.Net.IsZero())
	suite.Empty(report.Categories)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_DetailedListsDescendants() {
	ctx := context.Background()
	rootID := uuid.NewString()
	childID := uuid.NewString()

	categories := []domain.Category{
		{CategoryID: rootID, OrganizationID: suite.orgID, Name: "Operations", Type: domain.Expense, IncludeInPnL: true, Active: true},
		{CategoryID: childID, OrganizationID: suite.orgID, Name: "Rent", Type: domain.Expense, ParentID: &rootID, IncludeInPnL: true, Active: true},
	}
	txns := []domain.Transaction{
		postedTxn(suite.orgID, rootID, domain.Expense, 100),
		postedTxn(suite.orgID, childID, domain.Expense, 40),
	}

	params := customMarch()
	params.DetailLevel = domain.DetailDetailed

	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(suite.settings(), nil).Once()
	suite.mockTxnRepo.On("QueryTransactions", mock.Anything, suite.orgID, mock.Anything).Return(txns, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByOrganization", mock.Anything, suite.orgID).Return(categories, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.orgID, params)

	suite.Require().NoError(err)
	suite.Require().Len(report.Categories, 2)
	suite.Equal(rootID, report.Categories[0].CategoryID)
	suite.True(report.Categories[0].TotalBase.Equal(decimal.NewFromInt(100)))
	suite.True(report.Categories[0].SubtreeTotalBase.Equal(decimal.NewFromInt(140)))
	suite.Equal(childID, report.Categories[1].CategoryID)
	suite.True(report.Categories[1].TotalBase.Equal(decimal.NewFromInt(40)))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_CorruptHierarchyRejected() {
	ctx := context.Background()
	// a and b point at each other; stored data like this must not hang the walk
	idA := uuid.NewString()
	idB := uuid.NewString()
	categories := []domain.Category{
		{CategoryID: idA, OrganizationID: suite.orgID, Name: "A", Type: domain.Expense, ParentID: &idB, IncludeInPnL: true},
		{CategoryID: idB, OrganizationID: suite.orgID, Name: "B", Type: domain.Expense, ParentID: &idA, IncludeInPnL: true},
	}

	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(suite.settings(), nil).Once()
	suite.mockTxnRepo.On("QueryTransactions", mock.Anything, suite.orgID, mock.Anything).Return([]domain.Transaction{}, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByOrganization", mock.Anything, suite.orgID).Return(categories, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.orgID, customMarch())

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrCycleDetected)
}

func (suite *ReportingServiceTestSuite) TestCategoryReport_IncludesInactiveAndZeroActivity() {
	ctx := context.Background()
	rootID := uuid.NewString()
	childID := uuid.NewString()
	inactiveID := uuid.NewString()

	categories := []domain.Category{
		{CategoryID: rootID, OrganizationID: suite.orgID, Name: "Operations", Type: domain.Expense, IncludeInPnL: true, Active: true},
		{CategoryID: childID, OrganizationID: suite.orgID, Name: "Rent", Type: domain.Expense, ParentID: &rootID, IncludeInPnL: true, Active: true},
		{CategoryID: inactiveID, OrganizationID: suite.orgID, Name: "Legacy", Type: domain.Expense, IncludeInPnL: true, Active: false, SortOrder: 5},
	}
	txns := []domain.Transaction{
		postedTxn(suite.orgID, childID, domain.Expense, 40),
	}

	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(suite.settings(), nil).Once()
	suite.mockTxnRepo.On("QueryTransactions", mock.Anything, suite.orgID, mock.Anything).Return(txns, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByOrganization", mock.Anything, suite.orgID).Return(categories, nil).Once()

	report, err := suite.service.CategoryReport(ctx, suite.orgID, customMarch())

	suite.Require().NoError(err)
	suite.Require().Len(report.Items, 3)

	byID := make(map[string]domain.CategoryReportRow)
	for _, item := range report.Items {
		byID[item.CategoryID] = item
	}
	suite.Equal(0, byID[rootID].Level)
	suite.Equal(1, byID[childID].Level)
	suite.True(byID[childID].TotalBase.Equal(decimal.NewFromInt(40)))
	suite.Zero(byID[rootID].TransactionCount)
	suite.False(byID[inactiveID].Active)
	suite.True(byID[inactiveID].TotalBase.IsZero())
}

func (suite *ReportingServiceTestSuite) TestCounterpartyReport_UnknownBucketSortsLast() {
	ctx := context.Background()
	vendorID := uuid.NewString()
	clientID := uuid.NewString()

	counterparties := []domain.Counterparty{
		{CounterpartyID: vendorID, OrganizationID: suite.orgID, Kind: domain.KindVendor, Name: "Zeta Supplies", Active: true},
		{CounterpartyID: clientID, OrganizationID: suite.orgID, Kind: domain.KindClient, Name: "Alpha Corp", Active: true},
	}

	catID := uuid.NewString()
	withVendor := postedTxn(suite.orgID, catID, domain.Expense, 100)
	withVendor.VendorID = &vendorID
	withClient := postedTxn(suite.orgID, catID, domain.Income, 250)
	withClient.ClientID = &clientID
	orphan := postedTxn(suite.orgID, catID, domain.Expense, 30)

	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(suite.settings(), nil).Once()
	suite.mockTxnRepo.On("QueryTransactions", mock.Anything, suite.orgID, mock.Anything).
		Return([]domain.Transaction{withVendor, withClient, orphan}, nil).Once()
	suite.mockCpRepo.On("ListCounterpartiesByOrganization", mock.Anything, suite.orgID, (*domain.CounterpartyKind)(nil)).
		Return(counterparties, nil).Once()

	report, err := suite.service.CounterpartyReport(ctx, suite.orgID, customMarch())

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)

	// Named rows first in name order, unknown bucket last.
	suite.Equal("Alpha Corp", report.Rows[0].Name)
	suite.True(report.Rows[0].TotalIncomeBase.Equal(decimal.NewFromInt(250)))
	suite.True(report.Rows[0].NetBase.Equal(decimal.NewFromInt(250)))

	suite.Equal("Zeta Supplies", report.Rows[1].Name)
	suite.True(report.Rows[1].TotalExpenseBase.Equal(decimal.NewFromInt(100)))
	suite.True(report.Rows[1].NetBase.Equal(decimal.NewFromInt(-100)))

	suite.Equal(domain.UnknownCounterpartyName, report.Rows[2].Name)
	suite.Empty(report.Rows[2].CounterpartyID)
	suite.True(report.Rows[2].TotalExpenseBase.Equal(decimal.NewFromInt(30)))

	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(250)))
	suite.True(report.TotalExpense.Equal(decimal.NewFromInt(130)))
	suite.True(report.Net.Equal(decimal.NewFromInt(120)))
}

// --- Run Test Suite ---

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
