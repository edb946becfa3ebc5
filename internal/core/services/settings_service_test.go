package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/core/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// MockSettingsRepository is a mock type for the SettingsRepository interface
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context, organizationID string) (*domain.OrganizationSettings, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.OrganizationSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockOrganizationRepository is a mock type for the OrganizationReader interface
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

// --- Test Suite Setup ---

type SettingsServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockSettingsRepository
	mockOrgRepo *MockOrganizationRepository
	service     portssvc.SettingsService

	orgID  string
	userID string
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingsRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.service = services.NewSettingsService(suite.mockRepo, suite.mockOrgRepo)

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *SettingsServiceTestSuite) TestGetSettings_AppliesFieldDefaults() {
	ctx := context.Background()
	// A row with every optional column null.
	stored := &domain.OrganizationSettings{OrganizationID: suite.orgID}

	suite.mockRepo.On("GetSettings", ctx, suite.orgID).Return(stored, nil).Once()

	settings, err := suite.service.GetSettings(ctx, suite.orgID)

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultBaseCurrency, settings.BaseCurrency)
	suite.Equal(domain.DefaultFiscalYearStartMonth, settings.FiscalYearStartMonth)
	suite.Equal(domain.DefaultDecimalSeparator, settings.DecimalSeparator)
	suite.Equal(domain.DefaultThousandsSeparator, settings.ThousandsSeparator)
	suite.Equal(domain.DefaultDateFormat, settings.DateFormat)
	suite.Nil(settings.SoftClosedBefore)
}

func (suite *SettingsServiceTestSuite) TestGetSettings_MissingRecord() {
	ctx := context.Background()

	suite.mockRepo.On("GetSettings", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()

	settings, err := suite.service.GetSettings(ctx, suite.orgID)

	suite.Require().Error(err)
	suite.Nil(settings)
	suite.ErrorIs(err, apperrors.ErrSettingsNotFound)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_PartialMerge() {
	ctx := context.Background()
	stored := &domain.OrganizationSettings{
		OrganizationID:       suite.orgID,
		BaseCurrency:         "MYR",
		FiscalYearStartMonth: 1,
	}
	newMonth := 4

	suite.mockRepo.On("GetSettings", ctx, suite.orgID).Return(stored, nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(func(s domain.OrganizationSettings) bool {
		return s.FiscalYearStartMonth == 4 && s.BaseCurrency == "MYR" && s.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettings(ctx, suite.orgID, suite.userID, dto.UpdateSettingsRequest{
		FiscalYearStartMonth: &newMonth,
	})

	suite.Require().NoError(err)
	suite.Equal(4, settings.FiscalYearStartMonth)
	suite.Equal("MYR", settings.BaseCurrency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_FirstWriteCreatesRecord() {
	ctx := context.Background()
	org := &domain.Organization{OrganizationID: suite.orgID, Slug: "acme", Name: "Acme", Active: true}
	currency := "SGD"

	suite.mockRepo.On("GetSettings", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(org, nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(func(s domain.OrganizationSettings) bool {
		return s.OrganizationID == suite.orgID &&
			s.BaseCurrency == "SGD" &&
			s.FiscalYearStartMonth == domain.DefaultFiscalYearStartMonth &&
			s.CreatedBy == suite.userID
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettings(ctx, suite.orgID, suite.userID, dto.UpdateSettingsRequest{
		BaseCurrency: &currency,
	})

	suite.Require().NoError(err)
	suite.Equal("SGD", settings.BaseCurrency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_UnknownOrganization() {
	ctx := context.Background()
	currency := "SGD"

	suite.mockRepo.On("GetSettings", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()

	settings, err := suite.service.UpdateSettings(ctx, suite.orgID, suite.userID, dto.UpdateSettingsRequest{
		BaseCurrency: &currency,
	})

	suite.Require().Error(err)
	suite.Nil(settings)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettings", mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_SetSoftCloseCutoff() {
	ctx := context.Background()
	stored := &domain.OrganizationSettings{OrganizationID: suite.orgID, BaseCurrency: "MYR", FiscalYearStartMonth: 1}
	cutoff := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetSettings", ctx, suite.orgID).Return(stored, nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(func(s domain.OrganizationSettings) bool {
		return s.SoftClosedBefore != nil && s.SoftClosedBefore.Equal(cutoff)
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettings(ctx, suite.orgID, suite.userID, dto.UpdateSettingsRequest{
		SoftClosedBefore: &cutoff,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(settings.SoftClosedBefore)
	suite.True(settings.SoftClosedBefore.Equal(cutoff))
}

// --- Run Test Suite ---

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
