package aggregating

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/pkg/utils"
)

type dailyAccumulator struct {
	gross    decimal.Decimal
	discount decimal.Decimal
}

// BuildDailySeries agrupa as linhas de venda por dia (DD/MM/YYYY).
// Os descontos são por linha da planilha, por isso a entrada são as linhas
// decodificadas e não os sub-itens. O arredondamento acontece só na emissão.
func BuildDailySeries(rows []domain.DecodedSaleRow) []domain.DailyRecord {
	days := make(map[string]*dailyAccumulator)

	for _, row := range rows {
		key := utils.FormatBRDate(row.Date)

		acc, ok := days[key]
		if !ok {
			acc = &dailyAccumulator{gross: decimal.Zero, discount: decimal.Zero}
			days[key] = acc
		}

		acc.gross = acc.gross.Add(row.Gross)
		acc.discount = acc.discount.Add(row.Discount)
	}

	series := make([]domain.DailyRecord, 0, len(days))
	for key, acc := range days {
		series = append(series, domain.DailyRecord{
			Date:     key,
			Gross:    utils.DecimalToFloat(acc.gross),
			Value:    utils.DecimalToFloat(acc.gross.Sub(acc.discount)),
			Discount: utils.DecimalToFloat(acc.discount),
		})
	}

	SortDailySeries(series)
	return series
}

// SortDailySeries ordena pela data de calendário reconstruída a partir da chave DD/MM/YYYY
func SortDailySeries(series []domain.DailyRecord) {
	sort.SliceStable(series, func(i, j int) bool {
		a, errA := utils.ParseBRDate(series[i].Date)
		b, errB := utils.ParseBRDate(series[j].Date)
		if errA != nil || errB != nil {
			return series[i].Date < series[j].Date
		}
		return a.Before(b)
	})
}

// SumDailySeries calcula os totais do painel de vendas
func SumDailySeries(series []domain.DailyRecord) domain.SalesTotals {
	gross := decimal.Zero
	discounts := decimal.Zero
	net := decimal.Zero

	for _, day := range series {
		gross = gross.Add(decimal.NewFromFloat(day.Gross))
		discounts = discounts.Add(decimal.NewFromFloat(day.Discount))
		net = net.Add(decimal.NewFromFloat(day.Value))
	}

	return domain.SalesTotals{
		Gross:     utils.DecimalToFloat(gross),
		Discounts: utils.DecimalToFloat(discounts),
		Net:       utils.DecimalToFloat(net),
	}
}
