package analyzing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/infrastructure/repository/mocks"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/pkg/apiErrors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

var pipelineConfig = config.Pipeline{SaleKindMarker: "Venda", AccountSaleMarker: "CONTA"}

var referenceTable = []domain.ReferenceProduct{
	{Item: "LENTE ZEISS", UnitPrice: 150},
	{Item: "ESTOJO", UnitPrice: 12.5},
	{Item: "ARMAÇÃO X PRETA", UnitPrice: 200},
}

func salesRows() []domain.RawSaleRow {
	return []domain.RawSaleRow{
		{Kind: "Venda", Description: "2 X LENTE ZEISS\r\n1 X ESTOJO", DateSerial: 45659, GrossAmount: "R$ 312,50", Discount: 12.5},
		{Kind: "Venda", Description: "1 X ARMAÇÃO X PRETA", DateSerial: 45839, GrossAmount: "200,00"},
		{Kind: "Venda", Description: "2 X PAGAMENTO CONTA", DateSerial: 45700, GrossAmount: "R$ 90,00"},
		{Kind: "Venda", Description: "1 X PRODUTO SEM PREÇO_x000D_ABC X ESTOJO", DateSerial: 45700, GrossAmount: "50,00"},
		{Kind: "Orçamento", Description: "5 X LENTE ZEISS", DateSerial: 45900, GrossAmount: "750,00"},
		{Kind: "Venda", Description: "1 X ESTOJO", DateSerial: 45701, GrossAmount: "valor"},
	}
}

func TestService_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Processa o lote completo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockReferenceProductRepository(ctrl)
		repo.EXPECT().Get(gomock.Any()).Return(referenceTable, nil)

		service := NewService(repo, pipelineConfig)
		result, err := service.ProcessBatch(ctx, salesRows())
		require.NoError(t, err)

		assert.NotEmpty(t, result.BatchID)
		assert.Equal(t, "02/01/2025 até 01/07/2025", result.PeriodLabel)

		items := make(map[string]domain.LedgerEntry)
		for _, entry := range result.Ledger {
			items[entry.Item] = entry
			assert.Equal(t, result.PeriodLabel, entry.Period)
		}
		require.Len(t, items, 4)
		assert.Equal(t, 2, items["LENTE ZEISS"].Quantity)
		assert.Equal(t, 300.0, items["LENTE ZEISS"].TotalValue)
		assert.Equal(t, 1, items["ESTOJO"].Quantity)
		assert.Equal(t, 1, items["ARMAÇÃO X PRETA"].Quantity)
		assert.Equal(t, 45.0, items["PAGAMENTO CONTA"].UnitValue)
		assert.Equal(t, 90.0, items["PAGAMENTO CONTA"].TotalValue)

		assert.Equal(t, []string{"ABC X ESTOJO", "PRODUTO SEM PREÇO"}, result.NotFound)

		require.Len(t, result.DailySeries, 3)
		assert.Equal(t, domain.DailyRecord{Date: "02/01/2025", Gross: 312.5, Value: 300, Discount: 12.5}, result.DailySeries[0])
		assert.Equal(t, domain.DailyRecord{Date: "12/02/2025", Gross: 140, Value: 140, Discount: 0}, result.DailySeries[1])
		assert.Equal(t, "01/07/2025", result.DailySeries[2].Date)

		assert.Equal(t, domain.SalesTotals{Gross: 652.5, Discounts: 12.5, Net: 640}, result.Totals)
		assert.Equal(t, domain.BatchStats{TotalRows: 6, SaleRows: 4, SkippedRows: 1, ResolvedLines: 4, InvalidLines: 1}, result.Stats)
	})

	t.Run("Tabela de preços indisponível falha o lote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockReferenceProductRepository(ctrl)
		repo.EXPECT().Get(gomock.Any()).Return(nil, errors.New("timeout"))

		service := NewService(repo, pipelineConfig)
		_, err := service.ProcessBatch(ctx, salesRows())

		assert.ErrorIs(t, err, ErrReferenceTableUnavailable)
		var analysisErr *AnalysisError
		require.ErrorAs(t, err, &analysisErr)
		assert.Equal(t, apiErrors.ErrReferenceTableUnavailable, analysisErr.Code)
	})

	t.Run("Tabela de preços vazia falha o lote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockReferenceProductRepository(ctrl)
		repo.EXPECT().Get(gomock.Any()).Return([]domain.ReferenceProduct{}, nil)

		service := NewService(repo, pipelineConfig)
		_, err := service.ProcessBatch(ctx, salesRows())

		assert.ErrorIs(t, err, ErrReferenceTableUnavailable)
	})

	t.Run("Nenhum item resolvido falha o lote e informa os itens", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockReferenceProductRepository(ctrl)
		repo.EXPECT().Get(gomock.Any()).Return([]domain.ReferenceProduct{{Item: "OUTRO", UnitPrice: 1}}, nil)

		service := NewService(repo, pipelineConfig)
		_, err := service.ProcessBatch(ctx, []domain.RawSaleRow{
			{Kind: "Venda", Description: "1 X LENTE", DateSerial: 45659, GrossAmount: "10,00"},
		})

		require.ErrorIs(t, err, ErrEmptyResult)
		assert.True(t, IsBatchFatal(err))
		var analysisErr *AnalysisError
		require.ErrorAs(t, err, &analysisErr)
		assert.Equal(t, []string{"LENTE"}, analysisErr.NotFound)
	})

	t.Run("Planilha sem vendas não consulta a tabela de preços", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockReferenceProductRepository(ctrl)

		service := NewService(repo, pipelineConfig)
		_, err := service.ProcessBatch(ctx, []domain.RawSaleRow{
			{Kind: "Orçamento", Description: "1 X LENTE ZEISS", DateSerial: 45659, GrossAmount: "10,00"},
		})

		assert.ErrorIs(t, err, ErrNoSaleRows)
	})

	t.Run("Estorno em venda de conta não descarta o lote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockReferenceProductRepository(ctrl)
		repo.EXPECT().Get(gomock.Any()).Return(referenceTable, nil)

		service := NewService(repo, pipelineConfig)
		result, err := service.ProcessBatch(ctx, []domain.RawSaleRow{
			{Kind: "Venda", Description: "2 X LENTE ZEISS", DateSerial: 45659, GrossAmount: "R$ 300,00"},
			{Kind: "Venda", Description: "1 X PAGAMENTO CONTA", DateSerial: 45660, GrossAmount: "R$ -50,00", Discount: -5},
		})
		require.NoError(t, err)

		items := make(map[string]domain.LedgerEntry)
		for _, entry := range result.Ledger {
			items[entry.Item] = entry
		}
		require.Len(t, items, 2)
		assert.Equal(t, 300.0, items["LENTE ZEISS"].TotalValue)
		assert.Equal(t, -50.0, items["PAGAMENTO CONTA"].TotalValue)
		assert.Equal(t, -50.0, items["PAGAMENTO CONTA"].UnitValue)

		require.Len(t, result.DailySeries, 2)
		assert.Equal(t, domain.DailyRecord{Date: "03/01/2025", Gross: -50, Value: -45, Discount: -5}, result.DailySeries[1])
	})
}

func analysisInput() domain.StockAnalysisInput {
	period := "01/01/2025 até 01/03/2025"
	return domain.StockAnalysisInput{
		Ledger: []domain.LedgerEntry{
			{Item: "LENTE", Quantity: 300, Period: period, UnitValue: 150, TotalValue: 45000},
			{Item: "ESTOJO", Quantity: 300, Period: period, UnitValue: 10, TotalValue: 3000},
			{Item: "ARMAÇÃO", Quantity: 300, Period: period, UnitValue: 200, TotalValue: 60000},
			{Item: "CORDÃO", Quantity: 300, Period: period, UnitValue: 5, TotalValue: 1500},
			{Item: "FLANELA", Quantity: 300, Period: period, UnitValue: 2, TotalValue: 600},
		},
		Daily: []domain.DailyRecord{{Date: "01/01/2025", Gross: 100, Value: 100}},
		Stock: map[string]int{
			"LENTE":   40,
			"ESTOJO":  120,
			"ARMAÇÃO": 200,
			"CORDÃO":  -5,
			"FLANELA": -1,
		},
	}
}

func TestService_AnalyzeStock(t *testing.T) {
	service := NewService(nil, pipelineConfig)

	t.Run("Classifica e ordena por status", func(t *testing.T) {
		analysis, err := service.AnalyzeStock(context.Background(), analysisInput())
		require.NoError(t, err)

		require.Len(t, analysis.Assessments, 5)
		assert.Equal(t, domain.StockStatusIncorrect, analysis.Assessments[0].Status)
		assert.Equal(t, domain.StockStatusIncorrect, analysis.Assessments[1].Status)
		assert.Equal(t, "LENTE", analysis.Assessments[2].Product.Item)
		assert.Equal(t, 40.0, analysis.Assessments[2].Percentage)
		assert.Equal(t, domain.StockStatusCritical, analysis.Assessments[2].Status)
		assert.Equal(t, domain.StockStatusAdequate, analysis.Assessments[3].Status)
		assert.Equal(t, domain.StockStatusExcess, analysis.Assessments[4].Status)

		assert.Equal(t, domain.StockSummary{Total: 5, Incorrect: 2, Critical: 1, Adequate: 1, Excess: 1}, analysis.Summary)
	})

	t.Run("Filtro de status mantém as estatísticas completas", func(t *testing.T) {
		input := analysisInput()
		input.Status = "excesso"

		analysis, err := service.AnalyzeStock(context.Background(), input)
		require.NoError(t, err)

		require.Len(t, analysis.Assessments, 1)
		assert.Equal(t, "ARMAÇÃO", analysis.Assessments[0].Product.Item)
		assert.Equal(t, 5, analysis.Summary.Total)
	})

	t.Run("Série diária vazia é dado inválido", func(t *testing.T) {
		input := analysisInput()
		input.Daily = nil

		_, err := service.AnalyzeStock(context.Background(), input)
		var analysisErr *AnalysisError
		require.ErrorAs(t, err, &analysisErr)
		assert.Equal(t, apiErrors.ErrInvalidData, analysisErr.Code)
		assert.False(t, IsBatchFatal(err))
		assert.Equal(t, 1, strings.Count(err.Error(), "Dados inválidos ou incompletos"))
		assert.Contains(t, analysisErr.Details, "vendas:")
	})
}

func TestService_ExportIncorrect(t *testing.T) {
	service := NewService(nil, pipelineConfig)

	t.Run("Planilha contém apenas os produtos incorretos", func(t *testing.T) {
		artifact, err := service.ExportIncorrect(context.Background(), analysisInput(), "xlsx")
		require.NoError(t, err)

		assert.Contains(t, artifact.FileName, "estoque_incorreto_")
		assert.Contains(t, artifact.FileName, ".xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(artifact.Content))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(f.GetSheetName(0))
		require.NoError(t, err)
		require.Len(t, rows, 3)
		for _, row := range rows[1:] {
			assert.Equal(t, "Incorreto", row[len(row)-1])
		}
	})

	t.Run("PDF", func(t *testing.T) {
		artifact, err := service.ExportIncorrect(context.Background(), analysisInput(), "PDF")
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", artifact.ContentType)
	})

	t.Run("Formato desconhecido", func(t *testing.T) {
		_, err := service.ExportIncorrect(context.Background(), analysisInput(), "csv")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
