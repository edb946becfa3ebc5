package utils_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/utils"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		dec, thou domain.SeparatorStyle
		want      string
	}{
		{"default separators", "1234567.8", domain.SeparatorDot, domain.SeparatorComma, "1,234,567.80"},
		{"european style", "1234.5", domain.SeparatorComma, domain.SeparatorDot, "1.234,50"},
		{"no thousands", "1234.5", domain.SeparatorDot, domain.SeparatorNone, "1234.50"},
		{"small amount", "7", domain.SeparatorDot, domain.SeparatorComma, "7.00"},
		{"negative", "-1234.5", domain.SeparatorDot, domain.SeparatorComma, "-1,234.50"},
		{"rounding", "0.005", domain.SeparatorDot, domain.SeparatorComma, "0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.FormatAmount(decimal.RequireFromString(tt.amount), tt.dec, tt.thou)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2024", utils.FormatDate(d, domain.DateFormatDMY))
	assert.Equal(t, "03/05/2024", utils.FormatDate(d, domain.DateFormatMDY))
	assert.Equal(t, "2024-03-05", utils.FormatDate(d, domain.DateFormatYMD))
}
