package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vfg2006/stock-insight-api/infrastructure/repository"
	"github.com/vfg2006/stock-insight-api/infrastructure/spreadsheet"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/internal/usecases/aggregating"
	"github.com/vfg2006/stock-insight-api/internal/usecases/analyzing"
)

type analyzeOptions struct {
	SalesFile     string
	ReferenceFile string
	StockFile     string
	Status        string
	Search        string
	ExportPath    string
}

// analysisReport reúne tudo que o comando analyze exibe
type analysisReport struct {
	Batch      *domain.BatchResult
	Ledger     []domain.LedgerEntry
	Analysis   *domain.StockAnalysis
	ExportPath string
}

func (app *CLIApp) newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Processa a planilha de vendas e classifica o estoque",
		Example: `  estoque analyze --sales vendas.xlsx --stock estoque.yaml
  estoque analyze --sales vendas.xlsx --reference produtos.xlsx --stock estoque.toml --status critico
  estoque analyze --sales vendas.xlsx --stock estoque.json --export incorretos.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAnalyze(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SalesFile, "sales", "s", "", "Planilha de vendas (.xlsx)")
	cmd.Flags().StringVarP(&opts.ReferenceFile, "reference", "r", "", "Tabela de preços (.xlsx); sem ela usa a tabela configurada")
	cmd.Flags().StringVarP(&opts.StockFile, "stock", "e", "", "Estoque atual (.yaml, .toml ou .json)")
	cmd.Flags().StringVar(&opts.Status, "status", domain.StockStatusFilterAll, "Filtro de status: todos, incorreto, critico, baixo, adequado, excesso")
	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "Filtra o razão pelo nome do produto")
	cmd.Flags().StringVarP(&opts.ExportPath, "export", "o", "", "Exporta os produtos de estoque incorreto (.xlsx ou .pdf)")
	_ = cmd.MarkFlagRequired("sales")

	return cmd
}

func (app *CLIApp) runAnalyze(ctx context.Context, opts analyzeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	references, pipeline, closeFn, err := app.analysisReferences(ctx, opts.ReferenceFile)
	if err != nil {
		return err
	}
	defer closeFn()

	stop := startSpinner("Processando planilha de vendas")
	report, err := analyze(ctx, analyzing.NewService(references, pipeline), pipeline, opts)
	stop()
	if err != nil {
		printBatchError(err)
		return err
	}

	printReport(report)
	return nil
}

// analysisReferences usa a planilha de preços informada ou, na falta dela,
// a tabela criptografada configurada no ambiente
func (app *CLIApp) analysisReferences(ctx context.Context, referenceFile string) (repository.ReferenceProductRepository, config.Pipeline, func() error, error) {
	if referenceFile == "" {
		repo, cfg, closeFn, err := app.referenceRepository(ctx)
		if err != nil {
			return nil, config.Pipeline{}, nil, err
		}
		return repo, cfg.Pipeline, closeFn, nil
	}

	products, err := readReferenceFile(referenceFile)
	if err != nil {
		return nil, config.Pipeline{}, nil, err
	}

	pipeline := config.Pipeline{}
	if cfg, err := app.loadConfig(); err == nil {
		pipeline = cfg.Pipeline
	}

	noop := func() error { return nil }
	return repository.NewMemoryReferenceProductRepository(products), pipeline, noop, nil
}

func readReferenceFile(path string) ([]domain.ReferenceProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir tabela de preços: %w", err)
	}
	defer f.Close()

	return spreadsheet.ReadReferenceProducts(f)
}

func analyze(ctx context.Context, service analyzing.AnalysisService, pipeline config.Pipeline, opts analyzeOptions) (*analysisReport, error) {
	f, err := os.Open(opts.SalesFile)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha de vendas: %w", err)
	}
	defer f.Close()

	rows, err := spreadsheet.ReadSalesRows(f, pipeline.SalesSheet)
	if err != nil {
		return nil, err
	}

	batch, err := service.ProcessBatch(ctx, rows)
	if err != nil {
		return nil, err
	}

	report := &analysisReport{
		Batch:  batch,
		Ledger: aggregating.SearchLedger(batch.Ledger, opts.Search),
	}

	if opts.StockFile == "" {
		if opts.ExportPath != "" {
			return nil, fmt.Errorf("--export exige o arquivo de estoque (--stock)")
		}
		return report, nil
	}

	stock, err := LoadStockFile(opts.StockFile)
	if err != nil {
		return nil, err
	}

	input := domain.StockAnalysisInput{
		Ledger: batch.Ledger,
		Daily:  batch.DailySeries,
		Stock:  stock,
		Status: opts.Status,
	}

	report.Analysis, err = service.AnalyzeStock(ctx, input)
	if err != nil {
		return nil, err
	}

	if opts.ExportPath != "" {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.ExportPath)), ".")
		artifact, err := service.ExportIncorrect(ctx, input, format)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(opts.ExportPath, artifact.Content, 0o644); err != nil {
			return nil, fmt.Errorf("erro ao gravar exportação: %w", err)
		}
		report.ExportPath = opts.ExportPath
	}

	return report, nil
}
