// Package analyzing orquestra o processamento de um lote de vendas e a análise de estoque
package analyzing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/stock-insight-api/infrastructure/repository"
	"github.com/vfg2006/stock-insight-api/infrastructure/spreadsheet"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/internal/observability/metrics"
	"github.com/vfg2006/stock-insight-api/internal/usecases/aggregating"
	"github.com/vfg2006/stock-insight-api/internal/usecases/assessing"
	"github.com/vfg2006/stock-insight-api/internal/usecases/ingesting"
	"github.com/vfg2006/stock-insight-api/internal/usecases/referencing"
	"github.com/vfg2006/stock-insight-api/internal/validation"
	"github.com/vfg2006/stock-insight-api/pkg/apiErrors"
	"github.com/vfg2006/stock-insight-api/pkg/log"
	"github.com/vfg2006/stock-insight-api/pkg/utils"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

type AnalysisService interface {
	ProcessBatch(ctx context.Context, rows []domain.RawSaleRow) (*domain.BatchResult, error)
	AnalyzeStock(ctx context.Context, input domain.StockAnalysisInput) (*domain.StockAnalysis, error)
	ExportIncorrect(ctx context.Context, input domain.StockAnalysisInput, format string) (*domain.ExportArtifact, error)
}

type Service struct {
	references repository.ReferenceProductRepository
	extractor  *ingesting.Extractor
	ledger     *aggregating.LedgerBuilder
	now        func() time.Time
}

func NewService(references repository.ReferenceProductRepository, cfg config.Pipeline) *Service {
	return &Service{
		references: references,
		extractor:  ingesting.NewExtractor(cfg.SaleKindMarker),
		ledger:     aggregating.NewLedgerBuilder(cfg.AccountSaleMarker),
		now:        time.Now,
	}
}

// ProcessBatch transforma as linhas de uma planilha de vendas no razão de produtos,
// na série diária e no período do lote. Nada é guardado entre lotes.
func (s *Service) ProcessBatch(ctx context.Context, rows []domain.RawSaleRow) (result *domain.BatchResult, err error) {
	start := s.now()
	defer func() {
		metrics.ObserveBatch(err, time.Since(start))
	}()

	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, NewAnalysisError(err, apiErrors.ErrInternalServer, "falha ao gerar o id do lote")
	}
	logger := log.ForBatch(ctx, batchID)

	extraction := s.extractor.Extract(rows)
	metrics.AddBatchRows("sale", len(extraction.Rows))
	metrics.AddBatchRows("rejected", extraction.RejectedRows)
	metrics.AddBatchRows("skipped", extraction.SkippedRows)

	logger.WithFields(log.Fields{
		"batch_rows":    extraction.TotalRows,
		"batch_sales":   len(extraction.Rows),
		"batch_skipped": extraction.SkippedRows,
	}).Infof("analyzing: lote com %d linhas, %d vendas", extraction.TotalRows, len(extraction.Rows))

	if len(extraction.Rows) == 0 {
		return nil, NewAnalysisError(ErrNoSaleRows, apiErrors.ErrNoSaleRows, "")
	}

	index, err := s.loadIndex(ctx, logger)
	if err != nil {
		return nil, err
	}

	ledger, err := s.ledger.Build(extraction.Drafts, index)
	notFound := mergeNotFound(ledger.NotFound, extraction.Invalid)
	metrics.AddNotFound(len(notFound))

	if err != nil {
		if errors.Is(err, aggregating.ErrNoResolvedItems) {
			logger.WithField("not_found", len(notFound)).Warn("analyzing: nenhum item do lote foi resolvido")
			analysisErr := NewAnalysisError(ErrEmptyResult, apiErrors.ErrEmptyResult, fmt.Sprintf("%d itens sem preço", len(notFound)))
			analysisErr.NotFound = notFound
			return nil, analysisErr
		}
		return nil, NewAnalysisError(err, apiErrors.ErrInternalServer, "")
	}

	if len(notFound) > 0 {
		logger.WithField("not_found", len(notFound)).Warnf("analyzing: itens não encontrados: %s", strings.Join(notFound, ", "))
	}

	period, _ := aggregating.ResolvePeriod(aggregating.RowDates(extraction.Rows))
	label := period.Label()
	entries := aggregating.AttachPeriod(ledger.Entries, label)
	daily := aggregating.BuildDailySeries(extraction.Rows)

	if check := validation.ValidateLedger(entries); !check.Valid {
		return nil, NewAnalysisError(validation.ErrInvalidData, apiErrors.ErrInvalidData, check.Details())
	}
	if check := validation.ValidateDailySeries(daily); !check.Valid {
		return nil, NewAnalysisError(validation.ErrInvalidData, apiErrors.ErrInvalidData, check.Details())
	}

	result = &domain.BatchResult{
		BatchID:     batchID,
		Period:      period,
		PeriodLabel: label,
		Ledger:      entries,
		DailySeries: daily,
		Totals:      aggregating.SumDailySeries(daily),
		NotFound:    notFound,
		Stats: domain.BatchStats{
			TotalRows:     extraction.TotalRows,
			SaleRows:      len(extraction.Rows),
			SkippedRows:   extraction.SkippedRows,
			ResolvedLines: ledger.ResolvedLines,
			InvalidLines:  len(extraction.Invalid),
		},
	}

	logger.Infof("analyzing: lote processado com %d produtos no período %s", len(entries), label)
	return result, nil
}

func (s *Service) loadIndex(ctx context.Context, logger log.Logger) (*referencing.Index, error) {
	products, err := s.references.Get(ctx)
	if err != nil {
		logger.WithError(err).Error("analyzing: falha ao carregar tabela de preços")
		return nil, NewAnalysisError(ErrReferenceTableUnavailable, apiErrors.ErrReferenceTableUnavailable, "")
	}

	index, duplicates, _ := referencing.NewIndex(products)
	if index.Len() == 0 {
		return nil, NewAnalysisError(ErrReferenceTableUnavailable, apiErrors.ErrReferenceTableUnavailable, "tabela vazia")
	}
	if len(duplicates) > 0 {
		logger.Warnf("analyzing: tabela de preços com %d itens repetidos, mantida a primeira ocorrência", len(duplicates))
	}

	return index, nil
}

// AnalyzeStock classifica o estoque de cada produto do razão. As estatísticas
// contam todos os produtos; o filtro de status só afeta a lista.
func (s *Service) AnalyzeStock(ctx context.Context, input domain.StockAnalysisInput) (analysis *domain.StockAnalysis, err error) {
	defer func() {
		metrics.ObserveAnalysis(err)
	}()

	if check := validation.ValidateAnalysisInput(input); !check.Valid {
		log.ForContext(ctx).WithError(check.Err()).Warn("analyzing: dados da análise inválidos")
		return nil, NewAnalysisError(validation.ErrInvalidData, apiErrors.ErrInvalidData, check.Details())
	}

	assessments := assessing.AssessAll(input.Ledger, input.Stock)
	for _, a := range assessments {
		metrics.IncStockStatus(string(a.Status))
	}

	return &domain.StockAnalysis{
		Assessments: assessing.FilterByStatus(assessments, input.Status),
		Summary:     assessing.Summarize(assessments),
	}, nil
}

// ExportIncorrect gera o arquivo com os produtos de estoque incorreto
func (s *Service) ExportIncorrect(ctx context.Context, input domain.StockAnalysisInput, format string) (artifact *domain.ExportArtifact, err error) {
	start := s.now()
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatXLSX
	}

	defer func() {
		metrics.ObserveExport(format, err, time.Since(start))
	}()

	if format != FormatXLSX && format != FormatPDF {
		return nil, NewAnalysisError(ErrUnsupportedFormat, apiErrors.ErrInvalidFormat, format)
	}

	input.Status = string(domain.StockStatusIncorrect)
	analysis, err := s.AnalyzeStock(ctx, input)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("estoque_incorreto_%s.%s", start.Format("2006-01-02"), format)

	var content []byte
	contentType := spreadsheet.ContentTypeXLSX
	if format == FormatPDF {
		content, err = spreadsheet.BuildIncorrectStockPDF(analysis.Assessments, start)
		contentType = spreadsheet.ContentTypePDF
	} else {
		content, err = spreadsheet.BuildIncorrectStockXLSX(analysis.Assessments)
	}

	if err != nil {
		log.ForContext(ctx).WithError(err).Errorf("analyzing: falha ao gerar exportação %s", format)
		return nil, NewAnalysisError(ErrExportFailed, apiErrors.ErrExportFailed, "")
	}

	return &domain.ExportArtifact{
		FileName:    fileName,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// mergeNotFound une os itens sem preço e as linhas com quantidade inválida, ordenados e sem repetição
func mergeNotFound(lists ...[]string) []string {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, name := range list {
			if name == "" {
				continue
			}
			set[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
