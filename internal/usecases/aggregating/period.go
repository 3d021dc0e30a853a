package aggregating

import (
	"time"

	"github.com/vfg2006/stock-insight-api/internal/domain"
)

// ResolvePeriod encontra a menor e a maior data do lote.
// Retorna false quando não há datas.
func ResolvePeriod(dates []time.Time) (domain.Period, bool) {
	if len(dates) == 0 {
		return domain.Period{}, false
	}

	period := domain.Period{Start: dates[0], End: dates[0]}
	for _, date := range dates[1:] {
		if date.Before(period.Start) {
			period.Start = date
		}
		if date.After(period.End) {
			period.End = date
		}
	}

	return period, true
}

// RowDates extrai as datas das linhas de venda decodificadas
func RowDates(rows []domain.DecodedSaleRow) []time.Time {
	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date)
	}
	return dates
}
