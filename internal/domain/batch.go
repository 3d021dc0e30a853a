package domain

// BatchStats contém os contadores de leitura de um lote
type BatchStats struct {
	TotalRows     int `json:"total_linhas"`
	SaleRows      int `json:"linhas_venda"`
	SkippedRows   int `json:"linhas_ignoradas"`
	ResolvedLines int `json:"itens_resolvidos"`
	InvalidLines  int `json:"itens_invalidos"`
}

// BatchResult é o resultado completo do processamento de um upload de vendas
type BatchResult struct {
	BatchID     string        `json:"batch_id"`
	Period      Period        `json:"-"`
	PeriodLabel string        `json:"periodo"`
	Ledger      []LedgerEntry `json:"produtos"`
	DailySeries []DailyRecord `json:"vendas"`
	Totals      SalesTotals   `json:"totais"`
	NotFound    []string      `json:"nao_encontrados"`
	Stats       BatchStats    `json:"estatisticas"`
}

// ExportArtifact é um arquivo gerado para download
type ExportArtifact struct {
	FileName    string
	ContentType string
	Content     []byte
}
