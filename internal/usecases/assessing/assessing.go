package assessing

import (
	"sort"

	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/pkg/log"
	"github.com/vfg2006/stock-insight-api/pkg/utils"
)

// Assess calcula média mensal, percentual e status de um produto.
// Um rótulo de período inválido não falha a análise: o produto fica com
// zero meses analisados e média zero.
func Assess(entry domain.LedgerEntry, currentStock int) domain.StockAssessment {
	months := 0
	average := 0.0

	period, err := domain.ParsePeriodLabel(entry.Period)
	if err != nil {
		log.L.WithError(err).WithField("item", entry.Item).Debug("assessing: período inválido, produto sem média")
	} else {
		months = period.MonthsSpanned()
		average = float64(entry.Quantity) / float64(months)
	}

	percentage := 0.0
	if average > 0 {
		percentage = utils.RoundWithTwoDecimalPlace(float64(currentStock) / average * 100)
	}

	metrics := Metrics{
		CurrentStock:   currentStock,
		MonthlyAverage: average,
		Percentage:     percentage,
	}

	return domain.StockAssessment{
		Product:        entry,
		MonthlyAverage: utils.RoundWithTwoDecimalPlace(average),
		CurrentStock:   currentStock,
		Status:         Classify(metrics),
		Percentage:     percentage,
		MonthsAnalyzed: months,
	}
}

// AssessAll avalia todo o razão. Produtos ausentes do mapa de estoque usam estoque 0.
// O resultado já vem ordenado por status e percentual.
func AssessAll(ledger []domain.LedgerEntry, stock map[string]int) []domain.StockAssessment {
	assessments := make([]domain.StockAssessment, 0, len(ledger))
	for _, entry := range ledger {
		assessments = append(assessments, Assess(entry, stock[entry.Item]))
	}

	SortAssessments(assessments)
	return assessments
}

// SortAssessments ordena por status (incorreto, critico, baixo, adequado, excesso)
// e, dentro do mesmo status, por percentual crescente
func SortAssessments(assessments []domain.StockAssessment) {
	sort.SliceStable(assessments, func(i, j int) bool {
		ri, rj := assessments[i].Status.Rank(), assessments[j].Status.Rank()
		if ri != rj {
			return ri < rj
		}
		return assessments[i].Percentage < assessments[j].Percentage
	})
}

// FilterByStatus mantém apenas o status pedido; "todos" ou vazio não filtra
func FilterByStatus(assessments []domain.StockAssessment, status string) []domain.StockAssessment {
	if status == "" || status == domain.StockStatusFilterAll {
		return assessments
	}

	filtered := make([]domain.StockAssessment, 0)
	for _, assessment := range assessments {
		if string(assessment.Status) == status {
			filtered = append(filtered, assessment)
		}
	}
	return filtered
}

func FilterIncorrect(assessments []domain.StockAssessment) []domain.StockAssessment {
	return FilterByStatus(assessments, string(domain.StockStatusIncorrect))
}

// Summarize conta os produtos por status
func Summarize(assessments []domain.StockAssessment) domain.StockSummary {
	summary := domain.StockSummary{Total: len(assessments)}

	for _, assessment := range assessments {
		switch assessment.Status {
		case domain.StockStatusIncorrect:
			summary.Incorrect++
		case domain.StockStatusCritical:
			summary.Critical++
		case domain.StockStatusLow:
			summary.Low++
		case domain.StockStatusAdequate:
			summary.Adequate++
		case domain.StockStatusExcess:
			summary.Excess++
		}
	}

	return summary
}
