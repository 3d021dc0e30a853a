// Package assessing classifica a saúde do estoque de cada produto do razão
package assessing

import "github.com/vfg2006/stock-insight-api/internal/domain"

const (
	criticalThreshold = 50.0
	lowThreshold      = 100.0
	excessThreshold   = 150.0
)

// Metrics são os números usados pelas regras de classificação
type Metrics struct {
	CurrentStock   int
	MonthlyAverage float64
	Percentage     float64
}

type rule struct {
	status  domain.StockStatus
	matches func(m Metrics) bool
}

// rules é avaliada em ordem; a primeira regra que casar define o status.
// Produtos sem média de vendas caem em adequado.
var rules = []rule{
	{
		status:  domain.StockStatusIncorrect,
		matches: func(m Metrics) bool { return m.CurrentStock < 0 },
	},
	{
		status:  domain.StockStatusCritical,
		matches: func(m Metrics) bool { return m.MonthlyAverage > 0 && m.Percentage < criticalThreshold },
	},
	{
		status:  domain.StockStatusLow,
		matches: func(m Metrics) bool { return m.MonthlyAverage > 0 && m.Percentage < lowThreshold },
	},
	{
		status:  domain.StockStatusExcess,
		matches: func(m Metrics) bool { return m.Percentage > excessThreshold },
	},
}

// Classify aplica as regras na ordem e retorna adequado quando nenhuma casar
func Classify(m Metrics) domain.StockStatus {
	for _, r := range rules {
		if r.matches(m) {
			return r.status
		}
	}
	return domain.StockStatusAdequate
}
