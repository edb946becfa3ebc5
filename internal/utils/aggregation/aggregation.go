// Package aggregation folds base-currency amounts across transaction slices.
// No currency conversion happens here: every transaction already carries its
// amount in the organization's base currency, fixed at entry time.
package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// Sum adds AmountBase across all transactions.
func Sum(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		total = total.Add(txn.AmountBase)
	}
	return total
}

// SumBy groups transactions by keyFn and sums AmountBase per group.
func SumBy(transactions []domain.Transaction, keyFn func(domain.Transaction) string) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, txn := range transactions {
		key := keyFn(txn)
		totals[key] = totals[key].Add(txn.AmountBase)
	}
	return totals
}

// CountBy groups transactions by keyFn and counts per group.
func CountBy(transactions []domain.Transaction, keyFn func(domain.Transaction) string) map[string]int {
	counts := make(map[string]int)
	for _, txn := range transactions {
		counts[keyFn(txn)]++
	}
	return counts
}

// Count returns the number of transactions.
func Count(transactions []domain.Transaction) int {
	return len(transactions)
}
