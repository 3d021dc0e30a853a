package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawSaleRow é uma linha da planilha de vendas já lida pela fonte de dados
type RawSaleRow struct {
	Kind        string  `json:"tipo"`
	Description string  `json:"descricao"`
	DateSerial  float64 `json:"data"`  // dias desde 30/12/1899
	GrossAmount string  `json:"valor"` // ex: "R$ 1.234,56"
	Discount    float64 `json:"desconto"`
}

// DecodedSaleRow é uma linha de venda aceita com data e valor já interpretados
type DecodedSaleRow struct {
	Row      RawSaleRow
	Date     time.Time
	Gross    decimal.Decimal
	Discount decimal.Decimal
}

// SaleLineDraft é um sub-item de uma linha de venda, ainda sem preço resolvido
type SaleLineDraft struct {
	Item     string
	Quantity int
	Date     time.Time
	RowGross decimal.Decimal
}

// SaleLine é um sub-item com preço unitário resolvido
type SaleLine struct {
	Item        string
	Quantity    int
	Date        time.Time
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	AccountSale bool
}

var itemNameReplacer = strings.NewReplacer(`"`, "", "_x000D_", "")

// NormalizeItemName remove aspas e espaços nas extremidades do nome do item
func NormalizeItemName(name string) string {
	return strings.TrimSpace(itemNameReplacer.Replace(name))
}
