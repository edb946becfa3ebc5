package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally_books_app/internal/apperrors"
	"github.com/tallybooks/tally_books_app/internal/core/domain"
	portsrepo "github.com/tallybooks/tally_books_app/internal/core/ports/repositories"
	portssvc "github.com/tallybooks/tally_books_app/internal/core/ports/services"
	"github.com/tallybooks/tally_books_app/internal/dto"
)

const defaultListLimit = 50
const maxListLimit = 500

// transactionService provides ledger transaction operations.
type transactionService struct {
	BaseService
	txnRepo          portsrepo.TransactionRepositoryFacade
	categoryRepo     portsrepo.CategoryReader
	counterpartyRepo portsrepo.CounterpartyReader
	settingsSvc      portssvc.SettingsService
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	counterpartyRepo portsrepo.CounterpartyReader,
	settingsSvc portssvc.SettingsService,
) portssvc.TransactionService {
	return &transactionService{
		txnRepo:          txnRepo,
		categoryRepo:     categoryRepo,
		counterpartyRepo: counterpartyRepo,
		settingsSvc:      settingsSvc,
	}
}

var _ portssvc.TransactionService = (*transactionService)(nil)

// validateAmounts enforces the non-negative base amount and the
// both-present-or-both-absent rule for the secondary denomination.
func validateAmounts(amountBase decimal.Decimal, amountSecondary *decimal.Decimal, currencySecondary *string) error {
	if amountBase.IsNegative() {
		return fmt.Errorf("%w: amountBase must not be negative", apperrors.ErrValidation)
	}
	if (amountSecondary == nil) != (currencySecondary == nil) {
		return fmt.Errorf("%w: amountSecondary and currencySecondary must be set together", apperrors.ErrValidation)
	}
	if amountSecondary != nil && amountSecondary.IsNegative() {
		return fmt.Errorf("%w: amountSecondary must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// validateCategory checks that the category exists in the organization and
// matches the transaction type.
func (s *transactionService) validateCategory(ctx context.Context, organizationID, categoryID string, txnType domain.TransactionType) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if category.OrganizationID != organizationID {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	if category.Type != txnType {
		return fmt.Errorf("%w: category %s is %s, transaction is %s", apperrors.ErrTypeMismatch, categoryID, category.Type, txnType)
	}
	return nil
}

// validateCounterparty checks that vendor/client references match the
// transaction type and point at a live counterparty of the right kind.
func (s *transactionService) validateCounterparty(ctx context.Context, organizationID string, txnType domain.TransactionType, vendorID, clientID *string) error {
	if vendorID != nil && txnType != domain.Expense {
		return fmt.Errorf("%w: vendorID is only valid on EXPENSE transactions", apperrors.ErrValidation)
	}
	if clientID != nil && txnType != domain.Income {
		return fmt.Errorf("%w: clientID is only valid on INCOME transactions", apperrors.ErrValidation)
	}

	counterpartyID := vendorID
	expectedKind := domain.KindVendor
	if txnType == domain.Income {
		counterpartyID = clientID
		expectedKind = domain.KindClient
	}
	if counterpartyID == nil {
		return nil
	}

	cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, *counterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: counterparty %s", apperrors.ErrNotFound, *counterpartyID)
		}
		return fmt.Errorf("failed to look up counterparty: %w", err)
	}
	if cp.OrganizationID != organizationID {
		return fmt.Errorf("%w: counterparty %s", apperrors.ErrNotFound, *counterpartyID)
	}
	if cp.Kind != expectedKind {
		return fmt.Errorf("%w: counterparty %s is a %s", apperrors.ErrTypeMismatch, *counterpartyID, cp.Kind)
	}
	if cp.MergedIntoID != nil {
		return fmt.Errorf("%w: counterparty %s was merged into %s", apperrors.ErrValidation, *counterpartyID, *cp.MergedIntoID)
	}
	return nil
}

// checkSoftClose enforces the soft-close cutoff for POSTED transactions.
// An organization with no settings record has no cutoff.
func (s *transactionService) checkSoftClose(ctx context.Context, organizationID string, status domain.TransactionStatus, date time.Time, allowOverride bool) error {
	if status != domain.Posted {
		return nil
	}
	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingsNotFound) {
			return nil
		}
		return err
	}
	if settings.SoftClosedBefore == nil || !date.Before(*settings.SoftClosedBefore) {
		return nil
	}
	if allowOverride {
		s.LogWarn(ctx, "soft-close override used",
			slog.String("organization_id", organizationID),
			slog.Time("date", date),
			slog.Time("soft_closed_before", *settings.SoftClosedBefore),
		)
		return nil
	}
	return fmt.Errorf("%w: period before %s is closed", apperrors.ErrSoftClosed, settings.SoftClosedBefore.Format("2006-01-02"))
}

func (s *transactionService) CreateTransaction(ctx context.Context, organizationID string, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := validateAmounts(req.AmountBase, req.AmountSecondary, req.CurrencySecondary); err != nil {
		return nil, err
	}
	if len(req.Tags) > domain.MaxTagsPerTransaction {
		return nil, fmt.Errorf("%w: at most %d tags per transaction", apperrors.ErrValidation, domain.MaxTagsPerTransaction)
	}

	date, err := time.ParseInLocation(dto.DateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if req.Status == domain.Posted && date.After(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: a POSTED transaction cannot be dated in the future", apperrors.ErrValidation)
	}

	if err := s.validateCategory(ctx, organizationID, req.CategoryID, req.Type); err != nil {
		return nil, err
	}
	if err := s.validateCounterparty(ctx, organizationID, req.Type, req.VendorID, req.ClientID); err != nil {
		return nil, err
	}
	if err := s.checkSoftClose(ctx, organizationID, req.Status, date, req.AllowSoftClosedOverride); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		OrganizationID:    organizationID,
		Type:              req.Type,
		Status:            req.Status,
		AmountBase:        req.AmountBase,
		AmountSecondary:   req.AmountSecondary,
		CurrencySecondary: req.CurrencySecondary,
		Date:              date,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		AccountID:         req.AccountID,
		VendorID:          req.VendorID,
		ClientID:          req.ClientID,
		Tags:              req.Tags,
		DocumentRefs:      req.DocumentRefs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "failed to save transaction", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("organization_id", organizationID),
		slog.String("type", string(txn.Type)),
	)
	return &txn, nil
}

// getOwnedTransaction fetches a live transaction and verifies tenancy.
func (s *transactionService) getOwnedTransaction(ctx context.Context, organizationID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if txn.OrganizationID != organizationID || txn.IsDeleted() {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error) {
	return s.getOwnedTransaction(ctx, organizationID, transactionID)
}

func (s *transactionService) UpdateTransaction(ctx context.Context, organizationID string, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if req.ClearSecondary && (req.AmountSecondary != nil || req.CurrencySecondary != nil) {
		return nil, fmt.Errorf("%w: clearSecondary cannot be combined with a secondary amount or currency", apperrors.ErrValidation)
	}

	txn, err := s.getOwnedTransaction(ctx, organizationID, transactionID)
	if err != nil {
		return nil, err
	}

	// The stored state must be editable before any field changes apply.
	if err := s.checkSoftClose(ctx, organizationID, txn.Status, txn.Date, req.AllowSoftClosedOverride); err != nil {
		return nil, err
	}

	if req.Status != nil {
		txn.Status = *req.Status
	}
	if req.AmountBase != nil {
		txn.AmountBase = *req.AmountBase
	}
	if req.ClearSecondary {
		txn.AmountSecondary = nil
		txn.CurrencySecondary = nil
	}
	if req.AmountSecondary != nil {
		txn.AmountSecondary = req.AmountSecondary
	}
	if req.CurrencySecondary != nil {
		txn.CurrencySecondary = req.CurrencySecondary
	}
	if req.Date != nil {
		date, err := time.ParseInLocation(dto.DateLayout, *req.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, *req.Date)
		}
		txn.Date = date
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.AccountID != nil {
		txn.AccountID = *req.AccountID
	}
	if req.VendorID != nil {
		txn.VendorID = req.VendorID
	}
	if req.ClientID != nil {
		txn.ClientID = req.ClientID
	}
	if req.Tags != nil {
		if len(req.Tags) > domain.MaxTagsPerTransaction {
			return nil, fmt.Errorf("%w: at most %d tags per transaction", apperrors.ErrValidation, domain.MaxTagsPerTransaction)
		}
		txn.Tags = req.Tags
	}
	if req.DocumentRefs != nil {
		txn.DocumentRefs = req.DocumentRefs
	}

	if err := validateAmounts(txn.AmountBase, txn.AmountSecondary, txn.CurrencySecondary); err != nil {
		return nil, err
	}
	if txn.Status == domain.Posted && txn.Date.After(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: a POSTED transaction cannot be dated in the future", apperrors.ErrValidation)
	}
	if err := s.validateCategory(ctx, organizationID, txn.CategoryID, txn.Type); err != nil {
		return nil, err
	}
	if err := s.validateCounterparty(ctx, organizationID, txn.Type, txn.VendorID, txn.ClientID); err != nil {
		return nil, err
	}
	// The resulting state must be editable too, or an edit could move a
	// transaction into a closed period unnoticed.
	if err := s.checkSoftClose(ctx, organizationID, txn.Status, txn.Date, req.AllowSoftClosedOverride); err != nil {
		return nil, err
	}

	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.LogInfo(ctx, "transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, organizationID string, userID string, transactionID string, allowSoftClosedOverride bool) error {
	txn, err := s.getOwnedTransaction(ctx, organizationID, transactionID)
	if err != nil {
		return err
	}
	if err := s.checkSoftClose(ctx, organizationID, txn.Status, txn.Date, allowSoftClosedOverride); err != nil {
		return err
	}

	if err := s.txnRepo.SoftDeleteTransaction(ctx, transactionID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.LogInfo(ctx, "transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) ListTransactions(ctx context.Context, organizationID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filters := portsrepo.TransactionFilters{
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		Type:       params.Type,
		Status:     params.Status,
		CategoryID: params.CategoryID,
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, organizationID, filters, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list transactions", slog.String("organization_id", organizationID))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nextToken, nil
}
