package aggregating

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/internal/domain"
)

func decodedRow(date time.Time, gross, discount string) domain.DecodedSaleRow {
	return domain.DecodedSaleRow{
		Date:     date,
		Gross:    decimal.RequireFromString(gross),
		Discount: decimal.RequireFromString(discount),
	}
}

func TestBuildDailySeries(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("Agrupa linhas do mesmo dia e calcula o líquido", func(t *testing.T) {
		series := BuildDailySeries([]domain.DecodedSaleRow{
			decodedRow(day(2025, 1, 2), "100.10", "10"),
			decodedRow(day(2025, 1, 2).Add(15*time.Hour), "0.20", "0"),
			decodedRow(day(2025, 1, 3), "50", "0"),
		})

		require.Len(t, series, 2)
		assert.Equal(t, domain.DailyRecord{Date: "02/01/2025", Gross: 100.3, Value: 90.3, Discount: 10}, series[0])
		assert.Equal(t, domain.DailyRecord{Date: "03/01/2025", Gross: 50, Value: 50, Discount: 0}, series[1])
	})

	t.Run("Ordena por data de calendário na virada de mês e ano", func(t *testing.T) {
		series := BuildDailySeries([]domain.DecodedSaleRow{
			decodedRow(day(2025, 2, 1), "1", "0"),
			decodedRow(day(2024, 12, 31), "1", "0"),
			decodedRow(day(2025, 1, 15), "1", "0"),
			decodedRow(day(2025, 1, 2), "1", "0"),
		})

		dates := make([]string, 0, len(series))
		for _, record := range series {
			dates = append(dates, record.Date)
		}
		assert.Equal(t, []string{"31/12/2024", "02/01/2025", "15/01/2025", "01/02/2025"}, dates)
	})

	t.Run("Resultado não depende da ordem das linhas", func(t *testing.T) {
		rows := []domain.DecodedSaleRow{
			decodedRow(day(2025, 1, 2), "0.1", "0.01"),
			decodedRow(day(2025, 1, 2), "0.2", "0.02"),
			decodedRow(day(2025, 1, 4), "33.33", "3.33"),
			decodedRow(day(2025, 1, 4), "66.67", "0"),
			decodedRow(day(2025, 1, 3), "10", "1"),
		}
		expected := BuildDailySeries(rows)

		shuffled := append([]domain.DecodedSaleRow{}, rows...)
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 10; i++ {
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			assert.Equal(t, expected, BuildDailySeries(shuffled))
		}

		assert.Equal(t, 0.3, expected[0].Gross)
		assert.Equal(t, 100.0, expected[2].Gross)
	})

	t.Run("Sem linhas gera série vazia", func(t *testing.T) {
		assert.Empty(t, BuildDailySeries(nil))
	})
}

func TestSumDailySeries(t *testing.T) {
	totals := SumDailySeries([]domain.DailyRecord{
		{Date: "02/01/2025", Gross: 100.3, Value: 90.3, Discount: 10},
		{Date: "03/01/2025", Gross: 50.1, Value: 49.9, Discount: 0.2},
	})

	assert.Equal(t, domain.SalesTotals{Gross: 150.4, Discounts: 10.2, Net: 140.2}, totals)
}
