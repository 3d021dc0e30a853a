package domain

// ReferenceProduct é uma linha da tabela de preços de referência
type ReferenceProduct struct {
	Item      string  `json:"item" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gt=0"`
}

// ReferenceImportResult resume a importação de uma nova tabela de preços
type ReferenceImportResult struct {
	Count      int      `json:"count"`
	Skipped    int      `json:"skipped"`
	Duplicates []string `json:"duplicates"`
}
