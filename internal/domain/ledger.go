package domain

// LedgerEntry é o registro agregado de vendas de um produto no lote
type LedgerEntry struct {
	Item       string  `json:"item" validate:"required"`
	Quantity   int     `json:"quantidade" validate:"gte=0"`
	Period     string  `json:"periodo" validate:"required"`
	TotalValue float64 `json:"valor_total"`
	UnitValue  float64 `json:"valor_unitario"`
}

// DailyRecord é o agregado de vendas de um dia
type DailyRecord struct {
	Date     string  `json:"data" validate:"required,brdate"`
	Gross    float64 `json:"bruto"`
	Value    float64 `json:"valor"` // bruto - descontos
	Discount float64 `json:"descontos"`
}

// SalesTotals são os totais do painel de vendas
type SalesTotals struct {
	Gross     float64 `json:"total_bruto"`
	Discounts float64 `json:"total_descontos"`
	Net       float64 `json:"total_liquido"`
}
