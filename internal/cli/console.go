package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-insight-api/pkg/utils"
)

var statusStyles = map[domain.StockStatus]pterm.Style{
	domain.StockStatusIncorrect: {pterm.FgMagenta, pterm.Bold},
	domain.StockStatusCritical:  {pterm.FgRed, pterm.Bold},
	domain.StockStatusLow:       {pterm.FgYellow},
	domain.StockStatusAdequate:  {pterm.FgGreen},
	domain.StockStatusExcess:    {pterm.FgCyan},
}

func startSpinner(message string) func() {
	spinner, err := pterm.DefaultSpinner.Start(message)
	if err != nil {
		return func() {}
	}
	return func() { _ = spinner.Stop() }
}

func renderTable(data pterm.TableData) {
	_ = pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Render()
}

func printReport(report *analysisReport) {
	batch := report.Batch

	pterm.DefaultSection.Printfln("Lote %s | %s", batch.BatchID, batch.PeriodLabel)
	pterm.Info.Printfln("%d linhas lidas, %d vendas, %d ignoradas", batch.Stats.TotalRows, batch.Stats.SaleRows, batch.Stats.SkippedRows)
	pterm.Info.Printfln("Bruto %s | Descontos %s | Líquido %s",
		utils.FormatBRL(batch.Totals.Gross), utils.FormatBRL(batch.Totals.Discounts), utils.FormatBRL(batch.Totals.Net))

	if len(batch.NotFound) > 0 {
		pterm.Warning.Printfln("%d itens sem preço de referência: %s", len(batch.NotFound), strings.Join(batch.NotFound, ", "))
	}

	ledger := pterm.TableData{{"Produto", "Quantidade", "Valor Unitário", "Valor Total"}}
	for _, entry := range report.Ledger {
		ledger = append(ledger, []string{
			entry.Item,
			fmt.Sprint(entry.Quantity),
			utils.FormatBRL(entry.UnitValue),
			utils.FormatBRL(entry.TotalValue),
		})
	}
	renderTable(ledger)

	if report.Analysis != nil {
		printAnalysis(report.Analysis)
	}

	if report.ExportPath != "" {
		pterm.Success.Printfln("Produtos com estoque incorreto exportados para %s", report.ExportPath)
	}
}

func printAnalysis(analysis *domain.StockAnalysis) {
	pterm.DefaultSection.Println("Saúde do estoque")

	data := pterm.TableData{{"Produto", "Estoque", "Média Mensal", "Percentual", "Meses", "Status"}}
	for _, a := range analysis.Assessments {
		style, ok := statusStyles[a.Status]
		label := a.Status.Label()
		if ok {
			label = style.Sprint(label)
		}

		data = append(data, []string{
			a.Product.Item,
			fmt.Sprint(a.CurrentStock),
			fmt.Sprintf("%.2f", a.MonthlyAverage),
			fmt.Sprintf("%.2f%%", a.Percentage),
			fmt.Sprint(a.MonthsAnalyzed),
			label,
		})
	}
	renderTable(data)

	summary := analysis.Summary
	_ = pterm.DefaultBulletList.WithItems([]pterm.BulletListItem{
		{Level: 0, Text: fmt.Sprintf("Total: %d", summary.Total)},
		{Level: 1, Text: fmt.Sprintf("Incorreto: %d", summary.Incorrect)},
		{Level: 1, Text: fmt.Sprintf("Crítico: %d", summary.Critical)},
		{Level: 1, Text: fmt.Sprintf("Baixo: %d", summary.Low)},
		{Level: 1, Text: fmt.Sprintf("Adequado: %d", summary.Adequate)},
		{Level: 1, Text: fmt.Sprintf("Excesso: %d", summary.Excess)},
	}).Render()
}

func printBatchError(err error) {
	var analysisErr *analyzing.AnalysisError
	if errors.As(err, &analysisErr) && len(analysisErr.NotFound) > 0 {
		pterm.Warning.Printfln("Itens não encontrados na tabela de preços: %s", strings.Join(analysisErr.NotFound, ", "))
	}
}

func printImportResult(result *domain.ReferenceImportResult) {
	pterm.Success.Printfln("Tabela de preços atualizada com %d produtos", result.Count)
	if result.Skipped > 0 {
		pterm.Warning.Printfln("%d linhas sem nome ou preço ignoradas", result.Skipped)
	}
	if len(result.Duplicates) > 0 {
		pterm.Warning.Printfln("Produtos repetidos (mantida a primeira linha): %s", strings.Join(result.Duplicates, ", "))
	}
}

func printReferenceProducts(products []domain.ReferenceProduct) {
	data := pterm.TableData{{"Descrição", "Preço de Venda"}}
	for _, p := range products {
		data = append(data, []string{p.Item, utils.FormatBRL(p.UnitPrice)})
	}
	renderTable(data)
	pterm.Info.Printfln("%d produtos", len(products))
}
