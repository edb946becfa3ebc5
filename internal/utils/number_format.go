package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// FormatAmount renders an amount with two decimal places using the
// organization's separator preferences.
// Example: 1234567.8 with DOT decimal and COMMA thousands returns "1,234,567.80".
func FormatAmount(amount decimal.Decimal, decimalSep, thousandsSep domain.SeparatorStyle) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	thousands := thousandsSep.Rune()
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 && thousands != 0 {
			b.WriteRune(thousands)
		}
		b.WriteRune(digit)
	}
	b.WriteRune(decimalSep.Rune())
	b.WriteString(fracPart)
	return b.String()
}

// FormatDate renders a calendar date using the organization's date format.
func FormatDate(t time.Time, format domain.DateFormat) string {
	return t.Format(format.GoLayout())
}
