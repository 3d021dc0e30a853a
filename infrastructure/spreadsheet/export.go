package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"

	incorrectSheet = "Estoque Incorreto"
	referenceSheet = "Produtos"
)

var incorrectStockColumns = []string{
	"Produto",
	"Estoque Atual",
	"Média de Vendas",
	"Percentual do Estoque",
	"Meses Analisados",
	"Período",
	"Valor Unitário",
	"Valor Total",
	"Status",
}

func incorrectOnly(assessments []domain.StockAssessment) []domain.StockAssessment {
	filtered := make([]domain.StockAssessment, 0, len(assessments))
	for _, a := range assessments {
		if a.Status == domain.StockStatusIncorrect {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func incorrectStockRow(a domain.StockAssessment) []interface{} {
	return []interface{}{
		a.Product.Item,
		a.CurrentStock,
		a.MonthlyAverage,
		fmt.Sprintf("%.2f%%", a.Percentage),
		a.MonthsAnalyzed,
		a.Product.Period,
		a.Product.UnitValue,
		a.Product.TotalValue,
		a.Status.Label(),
	}
}

// BuildIncorrectStockXLSX gera a planilha com os produtos de estoque incorreto
func BuildIncorrectStockXLSX(assessments []domain.StockAssessment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", incorrectSheet)

	header, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return nil, err
	}
	headerRow := make([]interface{}, len(incorrectStockColumns))
	for i, column := range incorrectStockColumns {
		headerRow[i] = column
	}
	if err := f.SetSheetRow(incorrectSheet, header, &headerRow); err != nil {
		return nil, err
	}

	for i, a := range incorrectOnly(assessments) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := incorrectStockRow(a)
		if err := f.SetSheetRow(incorrectSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(incorrectSheet, "A", "A", 40)
	_ = f.SetColWidth(incorrectSheet, "B", "I", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildIncorrectStockPDF gera o relatório em PDF dos produtos de estoque incorreto
func BuildIncorrectStockPDF(assessments []domain.StockAssessment, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, tr("Produtos com Estoque Incorreto"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Gerado em: %s", generatedAt.Format("02/01/2006 15:04"))))
	pdf.Ln(8)

	widths := []float64{60, 22, 26, 30, 24, 44, 24, 24, 20}

	pdf.SetFont("Arial", "B", 8)
	for i, column := range incorrectStockColumns {
		pdf.CellFormat(widths[i], 6, tr(column), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, a := range incorrectOnly(assessments) {
		pdf.CellFormat(widths[0], 6, tr(a.Product.Item), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", a.CurrentStock), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.2f", a.MonthlyAverage), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f%%", a.Percentage), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%d", a.MonthsAnalyzed), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, tr(a.Product.Period), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.2f", a.Product.UnitValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[7], 6, fmt.Sprintf("%.2f", a.Product.TotalValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[8], 6, tr(a.Status.Label()), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReferenceSnapshotXLSX grava a tabela de preços no mesmo layout aceito no upload
func BuildReferenceSnapshotXLSX(products []domain.ReferenceProduct) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", referenceSheet)
	_ = f.SetCellValue(referenceSheet, "A1", "Descrição")
	_ = f.SetCellValue(referenceSheet, "B1", "Preço de Venda")

	for i, product := range products {
		row := i + 2
		_ = f.SetCellValue(referenceSheet, fmt.Sprintf("A%d", row), product.Item)
		_ = f.SetCellValue(referenceSheet, fmt.Sprintf("B%d", row), product.UnitPrice)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
