package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/internal/domain"
)

func TestResolvePeriod(t *testing.T) {
	t.Run("Usa a menor e a maior data do lote", func(t *testing.T) {
		period, ok := ResolvePeriod([]time.Time{
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		})
		require.True(t, ok)

		assert.Equal(t, "02/01/2025 até 01/07/2025", period.Label())

		parsed, err := domain.ParsePeriodLabel(period.Label())
		require.NoError(t, err)
		assert.Equal(t, 7, parsed.MonthsSpanned())
	})

	t.Run("Lote com uma única data", func(t *testing.T) {
		date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
		period, ok := ResolvePeriod([]time.Time{date})
		require.True(t, ok)

		assert.Equal(t, "02/01/2025 até 02/01/2025", period.Label())
		assert.Equal(t, 1, period.MonthsSpanned())
	})

	t.Run("Sem datas não resolve período", func(t *testing.T) {
		_, ok := ResolvePeriod(nil)
		assert.False(t, ok)
	})
}

func TestRowDates(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	dates := RowDates([]domain.DecodedSaleRow{{Date: date}, {Date: date.AddDate(0, 0, 1)}})

	assert.Equal(t, []time.Time{date, date.AddDate(0, 0, 1)}, dates)
}
