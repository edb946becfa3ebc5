package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/core/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

// --- Test Suite Setup ---

type CounterpartyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCounterpartyRepository
	service  portssvc.CounterpartyService

	orgID  string
	userID string
}

func (suite *CounterpartyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCounterpartyRepository)
	suite.service = services.NewCounterpartyService(suite.mockRepo)

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CounterpartyServiceTestSuite) vendor(id string) *domain.Counterparty {
	return &domain.Counterparty{
		CounterpartyID: id,
		OrganizationID: suite.orgID,
		Kind:           domain.KindVendor,
		Name:           "Vendor " + id[:8],
		Active:         true,
	}
}

// --- Test Cases ---

func (suite *CounterpartyServiceTestSuite) TestCreateCounterparty_Success() {
	ctx := context.Background()
	req := dto.CreateCounterpartyRequest{Kind: domain.KindVendor, Name: "Acme Supplies", Email: "billing@acme.example"}

	suite.mockRepo.On("SaveCounterparty", ctx, mock.MatchedBy(func(cp domain.Counterparty) bool {
		return cp.Kind == domain.KindVendor && cp.Name == "Acme Supplies" && cp.Active
	})).Return(nil).Once()

	cp, err := suite.service.CreateCounterparty(ctx, suite.orgID, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(cp)
	suite.NotEmpty(cp.CounterpartyID)
	suite.Equal(suite.userID, cp.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CounterpartyServiceTestSuite) TestUpdateCounterparty_MergedRejected() {
	ctx := context.Background()
	id := uuid.NewString()
	mergedInto := uuid.NewString()
	stored := suite.vendor(id)
	stored.MergedIntoID = &mergedInto

	newName := "Renamed"
	req := dto.UpdateCounterpartyRequest{Name: &newName}

	suite.mockRepo.On("FindCounterpartyByID", ctx, id).Return(stored, nil).Once()

	cp, err := suite.service.UpdateCounterparty(ctx, suite.orgID, suite.userID, id, req)

	suite.Require().Error(err)
	suite.Nil(cp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCounterparty", mock.Anything, mock.Anything)
}

func (suite *CounterpartyServiceTestSuite) TestUpdateCounterparty_OtherOrganizationNotFound() {
	ctx := context.Background()
	id := uuid.NewString()
	stored := suite.vendor(id)
	stored.OrganizationID = uuid.NewString()

	newName := "Renamed"
	req := dto.UpdateCounterpartyRequest{Name: &newName}

	suite.mockRepo.On("FindCounterpartyByID", ctx, id).Return(stored, nil).Once()

	cp, err := suite.service.UpdateCounterparty(ctx, suite.orgID, suite.userID, id, req)

	suite.Require().Error(err)
	suite.Nil(cp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CounterpartyServiceTestSuite) TestMergeCounterparties_Success() {
	ctx := context.Background()
	primaryID := uuid.NewString()
	secondaryID := uuid.NewString()

	suite.mockRepo.On("FindCounterpartyByID", ctx, primaryID).Return(suite.vendor(primaryID), nil).Once()
	suite.mockRepo.On("FindCounterpartyByID", ctx, secondaryID).Return(suite.vendor(secondaryID), nil).Once()
	suite.mockRepo.On("MergeCounterparties", ctx, suite.orgID, primaryID, []string{secondaryID}, suite.userID).Return(int64(12), nil).Once()

	repointed, err := suite.service.MergeCounterparties(ctx, suite.orgID, suite.userID, dto.MergeCounterpartiesRequest{
		PrimaryID:    primaryID,
		SecondaryIDs: []string{secondaryID},
	})

	suite.Require().NoError(err)
	suite.Equal(int64(12), repointed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CounterpartyServiceTestSuite) TestMergeCounterparties_KindMismatch() {
	ctx := context.Background()
	primaryID := uuid.NewString()
	secondaryID := uuid.NewString()
	client := suite.vendor(secondaryID)
	client.Kind = domain.KindClient

	suite.mockRepo.On("FindCounterpartyByID", ctx, primaryID).Return(suite.vendor(primaryID), nil).Once()
	suite.mockRepo.On("FindCounterpartyByID", ctx, secondaryID).Return(client, nil).Once()

	repointed, err := suite.service.MergeCounterparties(ctx, suite.orgID, suite.userID, dto.MergeCounterpartiesRequest{
		PrimaryID:    primaryID,
		SecondaryIDs: []string{secondaryID},
	})

	suite.Require().Error(err)
	suite.Zero(repointed)
	suite.ErrorIs(err, apperrors.ErrTypeMismatch)
	suite.mockRepo.AssertNotCalled(suite.T(), "MergeCounterparties", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CounterpartyServiceTestSuite) TestMergeCounterparties_PrimaryInSecondaries() {
	ctx := context.Background()
	primaryID := uuid.NewString()

	suite.mockRepo.On("FindCounterpartyByID", ctx, primaryID).Return(suite.vendor(primaryID), nil).Once()

	repointed, err := suite.service.MergeCounterparties(ctx, suite.orgID, suite.userID, dto.MergeCounterpartiesRequest{
		PrimaryID:    primaryID,
		SecondaryIDs: []string{primaryID},
	})

	suite.Require().Error(err)
	suite.Zero(repointed)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CounterpartyServiceTestSuite) TestMergeCounterparties_AlreadyMergedSecondary() {
	ctx := context.Background()
	primaryID := uuid.NewString()
	secondaryID := uuid.NewString()
	mergedInto := uuid.NewString()
	secondary := suite.vendor(secondaryID)
	secondary.MergedIntoID = &mergedInto

	suite.mockRepo.On("FindCounterpartyByID", ctx, primaryID).Return(suite.vendor(primaryID), nil).Once()
	suite.mockRepo.On("FindCounterpartyByID", ctx, secondaryID).Return(secondary, nil).Once()

	repointed, err := suite.service.MergeCounterparties(ctx, suite.orgID, suite.userID, dto.MergeCounterpartiesRequest{
		PrimaryID:    primaryID,
		SecondaryIDs: []string{secondaryID},
	})

	suite.Require().Error(err)
	suite.Zero(repointed)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CounterpartyServiceTestSuite) TestMergeCounterparties_PrimaryMergedAway() {
	ctx := context.Background()
	primaryID := uuid.NewString()
	mergedInto := uuid.NewString()
	primary := suite.vendor(primaryID)
	primary.MergedIntoID = &mergedInto

	suite.mockRepo.On("FindCounterpartyByID", ctx, primaryID).Return(primary, nil).Once()

	repointed, err := suite.service.MergeCounterparties(ctx, suite.orgID, suite.userID, dto.MergeCounterpartiesRequest{
		PrimaryID:    primaryID,
		SecondaryIDs: []string{uuid.NewString()},
	})

	suite.Require().Error(err)
	suite.Zero(repointed)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CounterpartyServiceTestSuite) TestListCounterparties_KindFilterPassedThrough() {
	ctx := context.Background()
	kind := domain.KindClient
	expected := []domain.Counterparty{*suite.vendor(uuid.NewString())}

	suite.mockRepo.On("ListCounterpartiesByOrganization", ctx, suite.orgID, &kind).Return(expected, nil).Once()

	got, err := suite.service.ListCounterparties(ctx, suite.orgID, &kind)

	suite.Require().NoError(err)
	suite.Equal(expected, got)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestCounterpartyService(t *testing.T) {
	suite.Run(t, new(CounterpartyServiceTestSuite))
}
