// Package ingesting classifica as linhas da planilha de vendas e extrai os itens vendidos
package ingesting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/pkg/log"
	"github.com/vfg2006/stock-insight-api/pkg/utils"
)

const (
	DefaultSaleKind   = "Venda"
	quantitySeparator = "X"
)

var lineBreakReplacer = strings.NewReplacer("\r\n", "\n", "_x000D_\n", "\n", "_x000D_", "\n", "\r", "\n")

// Extraction é o resultado da leitura de um lote de linhas brutas
type Extraction struct {
	Rows         []domain.DecodedSaleRow
	Drafts       []domain.SaleLineDraft
	Invalid      []string
	TotalRows    int
	RejectedRows int
	SkippedRows  int
}

type Extractor struct {
	saleKind string
}

func NewExtractor(saleKind string) *Extractor {
	if saleKind == "" {
		saleKind = DefaultSaleKind
	}
	return &Extractor{saleKind: saleKind}
}

// IsSaleRow indica se o tipo da linha é exatamente o marcador de venda
func (e *Extractor) IsSaleRow(row domain.RawSaleRow) bool {
	return row.Kind == e.saleKind
}

// DecodeRow interpreta a data serial e o valor monetário de uma linha de venda
func (e *Extractor) DecodeRow(row domain.RawSaleRow) (domain.DecodedSaleRow, error) {
	if math.IsNaN(row.DateSerial) || math.IsInf(row.DateSerial, 0) || row.DateSerial <= 0 {
		return domain.DecodedSaleRow{}, fmt.Errorf("%w: %v", ErrInvalidDate, row.DateSerial)
	}

	gross, err := utils.ParseBRLCurrency(row.GrossAmount)
	if err != nil {
		return domain.DecodedSaleRow{}, fmt.Errorf("%w: %q", err, row.GrossAmount)
	}

	// desconto ausente vale zero; estornos negativos são mantidos
	discount := decimal.Zero
	if row.Discount != 0 && !math.IsNaN(row.Discount) && !math.IsInf(row.Discount, 0) {
		discount = decimal.NewFromFloat(row.Discount)
	}

	return domain.DecodedSaleRow{
		Row:      row,
		Date:     utils.ExcelSerialToTime(row.DateSerial),
		Gross:    gross,
		Discount: discount,
	}, nil
}

// Extract percorre o lote, descarta as linhas que não são vendas e separa os sub-itens
func (e *Extractor) Extract(rows []domain.RawSaleRow) Extraction {
	extraction := Extraction{TotalRows: len(rows)}

	for _, row := range rows {
		if !e.IsSaleRow(row) {
			extraction.RejectedRows++
			continue
		}

		decoded, err := e.DecodeRow(row)
		if err != nil {
			log.L.WithError(err).Debugf("ingesting: linha ignorada: %q", row.Description)
			extraction.SkippedRows++
			continue
		}

		extraction.Rows = append(extraction.Rows, decoded)

		for _, line := range SplitDescriptionLines(row.Description) {
			quantity, item, err := SplitQuantity(line)
			if err != nil {
				extraction.Invalid = append(extraction.Invalid, domain.NormalizeItemName(line))
				continue
			}

			extraction.Drafts = append(extraction.Drafts, domain.SaleLineDraft{
				Item:     item,
				Quantity: quantity,
				Date:     decoded.Date,
				RowGross: decoded.Gross,
			})
		}
	}

	return extraction
}

// SplitDescriptionLines separa uma descrição com quebras de linha embutidas.
// Linhas vazias são descartadas.
func SplitDescriptionLines(description string) []string {
	normalized := lineBreakReplacer.Replace(description)

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// SplitQuantity separa "3 X NOME DO PRODUTO" em quantidade e descrição.
// Quando há mais de um "X", o primeiro token é a quantidade e o restante
// é reunido novamente com "X", já que o nome do produto pode conter "X".
func SplitQuantity(line string) (int, string, error) {
	tokens := strings.Split(line, quantitySeparator)
	if len(tokens) < 2 {
		return 0, "", fmt.Errorf("%w: %q", ErrMissingSeparator, line)
	}

	quantityToken := domain.NormalizeItemName(tokens[0])
	quantity, err := strconv.Atoi(quantityToken)
	if err != nil || quantity < 1 {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidQuantity, quantityToken)
	}

	item := domain.NormalizeItemName(strings.Join(tokens[1:], quantitySeparator))
	if item == "" {
		return 0, "", fmt.Errorf("%w: %q", ErrEmptyLine, line)
	}

	return quantity, item, nil
}
