package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/internal/domain"
)

var validLedger = []domain.LedgerEntry{
	{Item: "LENTE", Quantity: 3, Period: "01/01/2025 até 01/03/2025", TotalValue: 30, UnitValue: 10},
}

var validDaily = []domain.DailyRecord{
	{Date: "02/01/2025", Gross: 100, Value: 90, Discount: 10},
}

func TestValidateLedger(t *testing.T) {
	t.Run("Razão válido", func(t *testing.T) {
		result := ValidateLedger(validLedger)
		assert.True(t, result.Valid)
		assert.NoError(t, result.Err())
	})

	t.Run("Razão vazio é inválido", func(t *testing.T) {
		result := ValidateLedger(nil)
		assert.False(t, result.Valid)
		assert.ErrorIs(t, result.Err(), ErrInvalidData)
	})

	t.Run("Entrada sem item é inválida", func(t *testing.T) {
		result := ValidateLedger([]domain.LedgerEntry{{Quantity: 1, Period: "01/01/2025 até 01/03/2025"}})
		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "required", result.Errors[0].Rule)
		assert.Contains(t, result.Errors[0].Field, "item")
	})

	t.Run("Valores negativos de estorno são aceitos", func(t *testing.T) {
		result := ValidateLedger([]domain.LedgerEntry{
			{Item: "PAGAMENTO CONTA", Quantity: 1, Period: "01/01/2025 até 01/03/2025", TotalValue: -50, UnitValue: -50},
		})
		assert.True(t, result.Valid)
	})

	t.Run("Detalhes listam campo e regra sem repetir a mensagem", func(t *testing.T) {
		result := ValidateLedger([]domain.LedgerEntry{{Quantity: 1, Period: "x"}})
		require.False(t, result.Valid)
		assert.Contains(t, result.Details(), "produtos[0].item:required")
		assert.NotContains(t, result.Details(), ErrInvalidData.Error())
	})

	t.Run("Quantidade negativa é inválida", func(t *testing.T) {
		result := ValidateLedger([]domain.LedgerEntry{{Item: "LENTE", Quantity: -1, Period: "x"}})
		require.False(t, result.Valid)
		assert.Equal(t, "gte", result.Errors[0].Rule)
	})
}

func TestValidateDailySeries(t *testing.T) {
	assert.True(t, ValidateDailySeries(validDaily).Valid)

	result := ValidateDailySeries([]domain.DailyRecord{{Date: "2025-01-02", Gross: 1, Value: 1}})
	require.False(t, result.Valid)
	assert.Equal(t, "brdate", result.Errors[0].Rule)

	assert.False(t, ValidateDailySeries([]domain.DailyRecord{}).Valid)
	assert.True(t, ValidateDailySeries([]domain.DailyRecord{{Date: "03/01/2025", Gross: -50, Value: -45, Discount: -5}}).Valid)
}

func TestValidateReferenceProducts(t *testing.T) {
	assert.True(t, ValidateReferenceProducts([]domain.ReferenceProduct{{Item: "LENTE", UnitPrice: 10}}).Valid)
	assert.False(t, ValidateReferenceProducts([]domain.ReferenceProduct{{Item: "LENTE", UnitPrice: 0}}).Valid)
	assert.False(t, ValidateReferenceProducts(nil).Valid)
}

func TestValidateAnalysisInput(t *testing.T) {
	input := domain.StockAnalysisInput{
		Ledger: validLedger,
		Daily:  validDaily,
		Stock:  map[string]int{"LENTE": 5},
		Status: "critico",
	}
	assert.True(t, ValidateAnalysisInput(input).Valid)

	input.Status = "inexistente"
	result := ValidateAnalysisInput(input)
	require.False(t, result.Valid)
	assert.Equal(t, "oneof", result.Errors[0].Rule)

	input.Status = ""
	input.Daily = nil
	assert.ErrorIs(t, ValidateAnalysisInput(input).Err(), ErrInvalidData)
}
