package assessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/internal/domain"
)

const threeMonths = "01/01/2025 até 01/03/2025"

func TestAssess(t *testing.T) {
	entry := domain.LedgerEntry{Item: "LENTE", Quantity: 300, Period: threeMonths}

	testCases := []struct {
		name               string
		entry              domain.LedgerEntry
		stock              int
		expectedStatus     domain.StockStatus
		expectedPercentage float64
		expectedAverage    float64
		expectedMonths     int
	}{
		{
			name:               "Estoque abaixo de 50% é crítico",
			entry:              entry,
			stock:              40,
			expectedStatus:     domain.StockStatusCritical,
			expectedPercentage: 40,
			expectedAverage:    100,
			expectedMonths:     3,
		},
		{
			name:               "Estoque entre 50% e 100% é baixo",
			entry:              entry,
			stock:              99,
			expectedStatus:     domain.StockStatusLow,
			expectedPercentage: 99,
			expectedAverage:    100,
			expectedMonths:     3,
		},
		{
			name:               "Estoque entre 100% e 150% é adequado",
			entry:              entry,
			stock:              120,
			expectedStatus:     domain.StockStatusAdequate,
			expectedPercentage: 120,
			expectedAverage:    100,
			expectedMonths:     3,
		},
		{
			name:               "Limite de 150% ainda é adequado",
			entry:              entry,
			stock:              150,
			expectedStatus:     domain.StockStatusAdequate,
			expectedPercentage: 150,
			expectedAverage:    100,
			expectedMonths:     3,
		},
		{
			name:               "Estoque acima de 150% é excesso",
			entry:              entry,
			stock:              200,
			expectedStatus:     domain.StockStatusExcess,
			expectedPercentage: 200,
			expectedAverage:    100,
			expectedMonths:     3,
		},
		{
			name:               "Estoque negativo é incorreto mesmo com percentual baixo",
			entry:              entry,
			stock:              -5,
			expectedStatus:     domain.StockStatusIncorrect,
			expectedPercentage: -5,
			expectedAverage:    100,
			expectedMonths:     3,
		},
		{
			name:               "Período inválido deixa o produto adequado sem média",
			entry:              domain.LedgerEntry{Item: "LENTE", Quantity: 300, Period: "janeiro"},
			stock:              10,
			expectedStatus:     domain.StockStatusAdequate,
			expectedPercentage: 0,
			expectedAverage:    0,
			expectedMonths:     0,
		},
		{
			name:               "Estoque negativo sem média continua incorreto",
			entry:              domain.LedgerEntry{Item: "LENTE", Quantity: 0, Period: threeMonths},
			stock:              -1,
			expectedStatus:     domain.StockStatusIncorrect,
			expectedPercentage: 0,
			expectedAverage:    0,
			expectedMonths:     3,
		},
		{
			name:               "Mesmo mês conta como um mês",
			entry:              domain.LedgerEntry{Item: "LENTE", Quantity: 7, Period: "02/01/2025 até 20/01/2025"},
			stock:              3,
			expectedStatus:     domain.StockStatusCritical,
			expectedPercentage: 42.86,
			expectedAverage:    7,
			expectedMonths:     1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assessment := Assess(tc.entry, tc.stock)

			assert.Equal(t, tc.expectedStatus, assessment.Status)
			assert.Equal(t, tc.expectedPercentage, assessment.Percentage)
			assert.Equal(t, tc.expectedAverage, assessment.MonthlyAverage)
			assert.Equal(t, tc.expectedMonths, assessment.MonthsAnalyzed)
			assert.Equal(t, tc.stock, assessment.CurrentStock)
			assert.Equal(t, tc.entry, assessment.Product)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.StockStatusIncorrect, Classify(Metrics{CurrentStock: -1, MonthlyAverage: 10, Percentage: 500}))
	assert.Equal(t, domain.StockStatusCritical, Classify(Metrics{CurrentStock: 1, MonthlyAverage: 10, Percentage: 49.99}))
	assert.Equal(t, domain.StockStatusLow, Classify(Metrics{CurrentStock: 5, MonthlyAverage: 10, Percentage: 50}))
	assert.Equal(t, domain.StockStatusAdequate, Classify(Metrics{CurrentStock: 10, MonthlyAverage: 10, Percentage: 100}))
	assert.Equal(t, domain.StockStatusExcess, Classify(Metrics{CurrentStock: 16, MonthlyAverage: 10, Percentage: 150.01}))
	assert.Equal(t, domain.StockStatusAdequate, Classify(Metrics{CurrentStock: 0, MonthlyAverage: 0, Percentage: 0}))
}

func TestAssessAll(t *testing.T) {
	ledger := []domain.LedgerEntry{
		{Item: "EXCESSO", Quantity: 300, Period: threeMonths},
		{Item: "ADEQUADO", Quantity: 300, Period: threeMonths},
		{Item: "CRITICO_B", Quantity: 300, Period: threeMonths},
		{Item: "NEGATIVO", Quantity: 300, Period: threeMonths},
		{Item: "CRITICO_A", Quantity: 300, Period: threeMonths},
		{Item: "SEM_ESTOQUE", Quantity: 300, Period: threeMonths},
		{Item: "BAIXO", Quantity: 300, Period: threeMonths},
	}
	stock := map[string]int{
		"EXCESSO":   200,
		"ADEQUADO":  120,
		"CRITICO_B": 40,
		"NEGATIVO":  -5,
		"CRITICO_A": 10,
		"BAIXO":     80,
	}

	assessments := AssessAll(ledger, stock)
	require.Len(t, assessments, 7)

	order := make([]string, 0, len(assessments))
	for _, assessment := range assessments {
		order = append(order, assessment.Product.Item)
	}
	assert.Equal(t, []string{"NEGATIVO", "SEM_ESTOQUE", "CRITICO_A", "CRITICO_B", "BAIXO", "ADEQUADO", "EXCESSO"}, order)

	summary := Summarize(assessments)
	assert.Equal(t, domain.StockSummary{Total: 7, Incorrect: 1, Critical: 3, Low: 1, Adequate: 1, Excess: 1}, summary)

	t.Run("Filtro por status", func(t *testing.T) {
		assert.Len(t, FilterByStatus(assessments, "critico"), 3)
		assert.Len(t, FilterByStatus(assessments, "todos"), 7)
		assert.Len(t, FilterByStatus(assessments, ""), 7)
		assert.Empty(t, FilterByStatus(assessments, "inexistente"))
	})

	t.Run("Filtro de incorretos mantém apenas estoque negativo", func(t *testing.T) {
		incorrect := FilterIncorrect(assessments)
		require.Len(t, incorrect, 1)
		assert.Equal(t, "Incorreto", incorrect[0].Status.Label())
	})
}
