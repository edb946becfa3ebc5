package fiscal_test

import (
	"testing"
	"time"

	"github.com/tallybooks/tally_books_app/internal/core/domain"
	"github.com/tallybooks/tally_books_app/internal/utils/fiscal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_FiscalYTD(t *testing.T) {
	// April fiscal year, today in February: range starts the previous April.
	got := fiscal.Resolve(4, date(2024, time.February, 15), nil)
	assert.Equal(t, date(2023, time.April, 1), got.From)
	assert.Equal(t, date(2024, time.February, 15), got.To)
}

func TestResolve_TodayAfterFiscalStart(t *testing.T) {
	got := fiscal.Resolve(4, date(2024, time.June, 30), nil)
	assert.Equal(t, date(2024, time.April, 1), got.From)
	assert.Equal(t, date(2024, time.June, 30), got.To)
}

func TestResolve_TodayOnFiscalStart(t *testing.T) {
	got := fiscal.Resolve(4, date(2024, time.April, 1), nil)
	assert.Equal(t, date(2024, time.April, 1), got.From)
	assert.Equal(t, date(2024, time.April, 1), got.To)
}

func TestResolve_CalendarYTD(t *testing.T) {
	got := fiscal.Resolve(1, date(2024, time.February, 15), nil)
	assert.Equal(t, date(2024, time.January, 1), got.From)
	assert.Equal(t, date(2024, time.February, 15), got.To)
}

func TestResolve_ExplicitBoundsVerbatim(t *testing.T) {
	explicit := &domain.Period{From: date(2020, time.July, 3), To: date(2020, time.July, 3)}
	got := fiscal.Resolve(4, date(2024, time.February, 15), explicit)
	assert.Equal(t, *explicit, got)
}

func TestResolve_InvalidStartMonthFallsBack(t *testing.T) {
	got := fiscal.Resolve(0, date(2024, time.March, 10), nil)
	assert.Equal(t, date(2024, time.January, 1), got.From)
}

func TestYearFor(t *testing.T) {
	assert.Equal(t, 2023, fiscal.YearFor(4, date(2024, time.February, 15)))
	assert.Equal(t, 2024, fiscal.YearFor(4, date(2024, time.April, 1)))
	assert.Equal(t, 2024, fiscal.YearFor(1, date(2024, time.February, 15)))
}
