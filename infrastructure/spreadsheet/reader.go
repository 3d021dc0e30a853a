// Package spreadsheet lê as planilhas de vendas e de preços e gera as exportações
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/pkg/utils"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptySheet     = errors.New("planilha vazia")
	ErrMissingColumns = errors.New("planilha sem as colunas obrigatórias")
	ErrUnreadableFile = errors.New("arquivo não é uma planilha xlsx válida")
)

const (
	colKind        = "kind"
	colDescription = "description"
	colDate        = "date"
	colGross       = "gross"
	colDiscount    = "discount"
	colItem        = "item"
	colPrice       = "price"
)

// cabeçalhos aceitos, já sem acento e em minúsculas
var salesHeaders = map[string][]string{
	colKind:        {"tipo"},
	colDescription: {"descricao", "produtos", "itens"},
	colDate:        {"data", "data venda", "data da venda"},
	colGross:       {"valor", "valor bruto", "total"},
	colDiscount:    {"desconto", "descontos"},
}

var requiredSalesColumns = []string{colKind, colDescription, colDate, colGross}

var referenceHeaders = map[string][]string{
	colItem:  {"descricao", "item", "produto"},
	colPrice: {"preco de venda", "preco", "valor unitario"},
}

var requiredReferenceColumns = []string{colItem, colPrice}

type sheet struct {
	file   *excelize.File
	name   string
	rows   [][]string
	header int
	index  map[string]int
}

func openSheet(r io.Reader, name string, headers map[string][]string, required []string) (*sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	if name == "" {
		name = f.GetSheetName(0)
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: aba %q: %v", ErrUnreadableFile, name, err)
	}

	s := &sheet{file: f, name: name, rows: rows, header: -1}
	for i, row := range rows {
		if index := indexHeaders(row, headers); hasColumns(index, required) {
			s.header = i
			s.index = index
			break
		}
	}

	if len(rows) == 0 {
		f.Close()
		return nil, ErrEmptySheet
	}
	if s.header < 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(required, ", "))
	}

	return s, nil
}

func (s *sheet) Close() error {
	return s.file.Close()
}

func (s *sheet) dataRows() int {
	return len(s.rows) - s.header - 1
}

func (s *sheet) text(rowIdx int, column string) string {
	col, ok := s.index[column]
	if !ok {
		return ""
	}
	row := s.rows[rowIdx]
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// isText indica se a célula foi gravada como texto e não como número
func (s *sheet) isText(rowIdx int, column string) bool {
	col, ok := s.index[column]
	if !ok {
		return false
	}
	cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+1)
	if err != nil {
		return false
	}
	cellType, err := s.file.GetCellType(s.name, cell)
	if err != nil {
		return false
	}
	return cellType == excelize.CellTypeSharedString || cellType == excelize.CellTypeInlineString
}

// number lê uma célula numérica; células de texto seguem o formato brasileiro
func (s *sheet) number(rowIdx int, column string) (float64, error) {
	value := strings.TrimSpace(s.text(rowIdx, column))
	if value == "" {
		return 0, nil
	}

	if !s.isText(rowIdx, column) {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f, nil
		}
	}

	amount, err := utils.ParseBRLCurrency(value)
	if err != nil {
		return 0, err
	}
	f, _ := amount.Float64()
	return f, nil
}

// ReadSalesRows lê a planilha de vendas na ordem das linhas.
// Datas inválidas viram NaN e moedas numéricas são reescritas no formato brasileiro,
// deixando a decisão de descartar a linha para a etapa de ingestão.
func ReadSalesRows(r io.Reader, sheetName string) ([]domain.RawSaleRow, error) {
	s, err := openSheet(r, sheetName, salesHeaders, requiredSalesColumns)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	rows := make([]domain.RawSaleRow, 0, s.dataRows())
	for i := s.header + 1; i < len(s.rows); i++ {
		if isBlank(s.rows[i]) {
			continue
		}

		discount, err := s.number(i, colDiscount)
		if err != nil {
			discount = 0
		}

		rows = append(rows, domain.RawSaleRow{
			Kind:        strings.TrimSpace(s.text(i, colKind)),
			Description: s.text(i, colDescription),
			DateSerial:  s.dateSerial(i),
			GrossAmount: s.grossText(i),
			Discount:    discount,
		})
	}

	return rows, nil
}

func (s *sheet) dateSerial(rowIdx int) float64 {
	value := strings.TrimSpace(s.text(rowIdx, colDate))
	if value == "" {
		return math.NaN()
	}

	if !s.isText(rowIdx, colDate) {
		if serial, err := strconv.ParseFloat(value, 64); err == nil {
			return serial
		}
	}

	date, err := utils.ParseBRDate(value)
	if err != nil {
		return math.NaN()
	}
	return utils.TimeToExcelSerial(date)
}

func (s *sheet) grossText(rowIdx int) string {
	value := strings.TrimSpace(s.text(rowIdx, colGross))
	if value == "" || s.isText(rowIdx, colGross) {
		return value
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return strings.Replace(strconv.FormatFloat(f, 'f', -1, 64), ".", ",", 1)
}

// ReadReferenceProducts lê a planilha de preços. Preços ilegíveis viram 0
// e a linha é descartada na indexação.
func ReadReferenceProducts(r io.Reader) ([]domain.ReferenceProduct, error) {
	s, err := openSheet(r, "", referenceHeaders, requiredReferenceColumns)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	products := make([]domain.ReferenceProduct, 0, s.dataRows())
	for i := s.header + 1; i < len(s.rows); i++ {
		if isBlank(s.rows[i]) {
			continue
		}

		price, err := s.number(i, colPrice)
		if err != nil {
			price = 0
		}

		products = append(products, domain.ReferenceProduct{
			Item:      s.text(i, colItem),
			UnitPrice: price,
		})
	}

	return products, nil
}

func indexHeaders(row []string, headers map[string][]string) map[string]int {
	index := make(map[string]int)
	for col, cell := range row {
		name := normalizeHeader(cell)
		for key, aliases := range headers {
			if _, done := index[key]; done {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					index[key] = col
					break
				}
			}
		}
	}
	return index
}

func hasColumns(index map[string]int, required []string) bool {
	for _, column := range required {
		if _, ok := index[column]; !ok {
			return false
		}
	}
	return true
}

func normalizeHeader(value string) string {
	accentRemover := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(accentRemover, value)
	if err != nil {
		stripped = value
	}
	return strings.ToLower(strings.Join(strings.Fields(stripped), " "))
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
