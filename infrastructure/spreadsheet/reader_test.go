package spreadsheet

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadSalesRows(t *testing.T) {
	t.Run("Lê linhas com data serial, valor numérico e texto", func(t *testing.T) {
		buf := buildWorkbook(t, [][]interface{}{
			{"Relatório de vendas"},
			{"Tipo", "Descrição", "Data", "Valor", "Desconto"},
			{"Venda", "2 X LENTE ZEISS", 45659, 300.5, 10},
			{"Venda", "1 X ESTOJO", "03/01/2025", "R$ 1.234,56", ""},
			{},
			{"Devolução", "1 X ESTOJO", 45661, 12.5, 0},
			{"Venda", "1 X ARMAÇÃO", "ontem", "10,00", 0},
		})

		rows, err := ReadSalesRows(buf, "")
		require.NoError(t, err)
		require.Len(t, rows, 4)

		assert.Equal(t, "Venda", rows[0].Kind)
		assert.Equal(t, "2 X LENTE ZEISS", rows[0].Description)
		assert.Equal(t, 45659.0, rows[0].DateSerial)
		assert.Equal(t, "300,5", rows[0].GrossAmount)
		assert.Equal(t, 10.0, rows[0].Discount)

		assert.Equal(t, 45660.0, rows[1].DateSerial)
		assert.Equal(t, "R$ 1.234,56", rows[1].GrossAmount)
		assert.Equal(t, 0.0, rows[1].Discount)

		assert.Equal(t, "Devolução", rows[2].Kind)
		assert.True(t, math.IsNaN(rows[3].DateSerial))
	})

	t.Run("Planilha sem colunas obrigatórias", func(t *testing.T) {
		buf := buildWorkbook(t, [][]interface{}{
			{"Produto", "Quantidade"},
			{"LENTE", 1},
		})

		_, err := ReadSalesRows(buf, "")
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("Arquivo que não é planilha", func(t *testing.T) {
		_, err := ReadSalesRows(bytes.NewBufferString("não é xlsx"), "")
		assert.ErrorIs(t, err, ErrUnreadableFile)
	})
}

func TestReadReferenceProducts(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Descrição", "Preço de Venda"},
		{"LENTE ZEISS", 150},
		{"ESTOJO", "12,50"},
		{"BRINDE", "grátis"},
	})

	products, err := ReadReferenceProducts(buf)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "LENTE ZEISS", products[0].Item)
	assert.Equal(t, 150.0, products[0].UnitPrice)
	assert.Equal(t, 12.5, products[1].UnitPrice)
	assert.Equal(t, 0.0, products[2].UnitPrice)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "preco de venda", normalizeHeader("  Preço  de Venda "))
	assert.Equal(t, "descricao", normalizeHeader("DESCRIÇÃO"))
}
