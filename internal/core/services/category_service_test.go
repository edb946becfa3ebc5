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

type CategoryServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	mockTxnRepo      *MockTransactionRepository
	service          portssvc.CategoryService

	orgID  string
	userID string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewCategoryService(suite.mockCategoryRepo, suite.mockTxnRepo)

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CategoryServiceTestSuite) category(id string, parentID *string, sortOrder int) domain.Category {
	return domain.Category{
		CategoryID:     id,
		OrganizationID: suite.orgID,
		Name:           "Category " + id[:8],
		Type:           domain.Expense,
		ParentID:       parentID,
		IncludeInPnL:   true,
		Active:         true,
		SortOrder:      sortOrder,
	}
}

// --- Test Cases ---

func (suite *CategoryServiceTestSuite) TestCreateCategory_AppendsToSiblingGroup() {
	ctx := context.Background()
	existing := []domain.Category{
		suite.category(uuid.NewString(), nil, 0),
		suite.category(uuid.NewString(), nil, 1),
	}

	req := dto.CreateCategoryRequest{Name: "Utilities", Type: domain.Expense}

	suite.mockCategoryRepo.On("ListCategoriesByOrganization", ctx, suite.orgID).Return(existing, nil).Once()
	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Utilities" && c.SortOrder == 2 && c.IncludeInPnL && c.Active
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.orgID, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(category)
	suite.Equal(2, category.SortOrder)
	suite.Equal(suite.userID, category.CreatedBy)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_ParentTypeMismatch() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := suite.category(parentID, nil, 0)
	parent.Type = domain.Income

	req := dto.CreateCategoryRequest{Name: "Utilities", Type: domain.Expense, ParentID: &parentID}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, parentID).Return(&parent, nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.orgID, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrTypeMismatch)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_IncludeInPnLOptOut() {
	ctx := context.Background()
	includeInPnL := false
	req := dto.CreateCategoryRequest{Name: "Owner Drawings", Type: domain.Expense, IncludeInPnL: &includeInPnL}

	suite.mockCategoryRepo.On("ListCategoriesByOrganization", ctx, suite.orgID).Return([]domain.Category{}, nil).Once()
	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return !c.IncludeInPnL
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.orgID, suite.userID, req)

	suite.Require().NoError(err)
	suite.False(category.IncludeInPnL)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_SelfParentRejected() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	stored := suite.category(categoryID, nil, 0)

	req := dto.UpdateCategoryRequest{ParentID: &categoryID}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&stored, nil).Once()

	category, err := suite.service.UpdateCategory(ctx, suite.orgID, suite.userID, categoryID, req)

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrCycleDetected)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_CycleRejectedHierarchyUnchanged() {
	ctx := context.Background()
	// grandparent <- parent <- child; re-parenting grandparent under child loops
	grandparentID := uuid.NewString()
	parentID := uuid.NewString()
	childID := uuid.NewString()

	grandparent := suite.category(grandparentID, nil, 0)
	parent := suite.category(parentID, &grandparentID, 0)
	child := suite.category(childID, &parentID, 0)
	all := []domain.Category{grandparent, parent, child}

	req := dto.UpdateCategoryRequest{ParentID: &childID}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, grandparentID).Return(&grandparent, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, childID).Return(&child, nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByOrganization", ctx, suite.orgID).Return(all, nil).Once()

	category, err := suite.service.UpdateCategory(ctx, suite.orgID, suite.userID, grandparentID, req)

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrCycleDetected)
	// No write happened, the stored hierarchy is untouched.
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_ClearParentAndParentIDExclusive() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	otherID := uuid.NewString()

	req := dto.UpdateCategoryRequest{ParentID: &otherID, ClearParent: true}

	category, err := suite.service.UpdateCategory(ctx, suite.orgID, suite.userID, categoryID, req)

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindCategoryByID", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_ClearParentPromotesToTopLevel() {
	ctx := context.Background()
	parentID := uuid.NewString()
	categoryID := uuid.NewString()
	stored := suite.category(categoryID, &parentID, 0)

	req := dto.UpdateCategoryRequest{ClearParent: true}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&stored, nil).Once()
	suite.mockCategoryRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.CategoryID == categoryID && c.ParentID == nil && c.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	category, err := suite.service.UpdateCategory(ctx, suite.orgID, suite.userID, categoryID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(category)
	suite.Nil(category.ParentID)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestReorderCategories_Success() {
	ctx := context.Background()
	idA := uuid.NewString()
	idB := uuid.NewString()
	idC := uuid.NewString()
	all := []domain.Category{
		suite.category(idA, nil, 0),
		suite.category(idB, nil, 1),
		suite.category(idC, nil, 2),
	}

	req := dto.ReorderCategoriesRequest{Type: domain.Expense, OrderedIDs: []string{idC, idA, idB}}

	suite.mockCategoryRepo.On("ListCategoriesByOrganization", ctx, suite.orgID).Return(all, nil).Once()
	suite.mockCategoryRepo.On("UpdateSortOrders", ctx, suite.orgID, req.OrderedIDs, suite.userID).Return(nil).Once()

	err := suite.service.ReorderCategories(ctx, suite.orgID, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestReorderCategories_MissingSibling() {
	ctx := context.Background()
	idA := uuid.NewString()
	idB := uuid.NewString()
	all := []domain.Category{
		suite.category(idA, nil, 0),
		suite.category(idB, nil, 1),
	}

	req := dto.ReorderCategoriesRequest{Type: domain.Expense, OrderedIDs: []string{idA}}

	suite.mockCategoryRepo.On("ListCategoriesByOrganization", ctx, suite.orgID).Return(all, nil).Once()

	err := suite.service.ReorderCategories(ctx, suite.orgID, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrGroupMismatch)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateSortOrders", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestReorderCategories_ForeignCategory() {
	ctx := context.Background()
	idA := uuid.NewString()
	all := []domain.Category{suite.category(idA, nil, 0)}

	req := dto.ReorderCategoriesRequest{Type: domain.Expense, OrderedIDs: []string{uuid.NewString()}}

	suite.mockCategoryRepo.On("ListCategoriesByOrganization", ctx, suite.orgID).Return(all, nil).Once()

	err := suite.service.ReorderCategories(ctx, suite.orgID, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrGroupMismatch)
}

func (suite *CategoryServiceTestSuite) TestReorderCategories_DuplicateID() {
	ctx := context.Background()
	idA := uuid.NewString()
	idB := uuid.NewString()
	all := []domain.Category{
		suite.category(idA, nil, 0),
		suite.category(idB, nil, 1),
	}

	req := dto.ReorderCategoriesRequest{Type: domain.Expense, OrderedIDs: []string{idA, idA}}

	suite.mockCategoryRepo.On("ListCategoriesByOrganization", ctx, suite.orgID).Return(all, nil).Once()

	err := suite.service.ReorderCategories(ctx, suite.orgID, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrGroupMismatch)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ReassignsTransactions() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	replacementID := uuid.NewString()
	stored := suite.category(categoryID, nil, 0)
	replacement := suite.category(replacementID, nil, 1)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&stored, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByCategory", ctx, suite.orgID, categoryID).Return(int64(7), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, replacementID).Return(&replacement, nil).Once()
	suite.mockCategoryRepo.On("DeleteCategoryWithReassignment", ctx, suite.orgID, categoryID, replacementID, suite.userID).Return(int64(7), nil).Once()

	reassigned, err := suite.service.DeleteCategory(ctx, suite.orgID, suite.userID, categoryID, replacementID)

	suite.Require().NoError(err)
	suite.Equal(int64(7), reassigned)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ReplacementTypeMismatch() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	replacementID := uuid.NewString()
	stored := suite.category(categoryID, nil, 0)
	replacement := suite.category(replacementID, nil, 1)
	replacement.Type = domain.Income

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&stored, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByCategory", ctx, suite.orgID, categoryID).Return(int64(3), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, replacementID).Return(&replacement, nil).Once()

	reassigned, err := suite.service.DeleteCategory(ctx, suite.orgID, suite.userID, categoryID, replacementID)

	suite.Require().Error(err)
	suite.Zero(reassigned)
	suite.ErrorIs(err, apperrors.ErrTypeMismatch)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "DeleteCategoryWithReassignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ZeroTransactionsSkipsReplacementValidation() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	stored := suite.category(categoryID, nil, 0)

	// Any placeholder id is accepted when nothing needs reassigning.
	placeholder := "unused"

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&stored, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByCategory", ctx, suite.orgID, categoryID).Return(int64(0), nil).Once()
	suite.mockCategoryRepo.On("DeleteCategoryWithReassignment", ctx, suite.orgID, categoryID, placeholder, suite.userID).Return(int64(0), nil).Once()

	reassigned, err := suite.service.DeleteCategory(ctx, suite.orgID, suite.userID, categoryID, placeholder)

	suite.Require().NoError(err)
	suite.Zero(reassigned)
	// The placeholder was never looked up.
	suite.mockCategoryRepo.AssertNumberOfCalls(suite.T(), "FindCategoryByID", 1)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_SameReplacementRejected() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	stored := suite.category(categoryID, nil, 0)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&stored, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByCategory", ctx, suite.orgID, categoryID).Return(int64(2), nil).Once()

	reassigned, err := suite.service.DeleteCategory(ctx, suite.orgID, suite.userID, categoryID, categoryID)

	suite.Require().Error(err)
	suite.Zero(reassigned)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---

func TestCategoryService(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
