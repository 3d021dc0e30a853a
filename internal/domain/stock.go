package domain

import "fmt"

// StockStatus é a classificação de saúde do estoque de um produto.
// O conjunto de valores é fechado: use apenas as constantes abaixo.
type StockStatus string

const (
	StockStatusIncorrect StockStatus = "incorreto"
	StockStatusCritical  StockStatus = "critico"
	StockStatusLow       StockStatus = "baixo"
	StockStatusAdequate  StockStatus = "adequado"
	StockStatusExcess    StockStatus = "excesso"
)

// StockStatusFilterAll seleciona todos os status no filtro da análise
const StockStatusFilterAll = "todos"

// StockStatuses lista os status na ordem de exibição da análise
var StockStatuses = []StockStatus{
	StockStatusIncorrect,
	StockStatusCritical,
	StockStatusLow,
	StockStatusAdequate,
	StockStatusExcess,
}

var stockStatusLabels = map[StockStatus]string{
	StockStatusIncorrect: "Incorreto",
	StockStatusCritical:  "Crítico",
	StockStatusLow:       "Baixo",
	StockStatusAdequate:  "Adequado",
	StockStatusExcess:    "Excesso",
}

// Rank retorna a posição do status na ordenação da análise
func (s StockStatus) Rank() int {
	for i, status := range StockStatuses {
		if status == s {
			return i
		}
	}
	return len(StockStatuses)
}

// Label retorna o texto de exibição do status
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}
	return "Desconhecido"
}

func (s StockStatus) Valid() bool {
	_, ok := stockStatusLabels[s]
	return ok
}

// ParseStockStatus converte um texto em StockStatus
func ParseStockStatus(value string) (StockStatus, error) {
	status := StockStatus(value)
	if !status.Valid() {
		return "", fmt.Errorf("status de estoque desconhecido: %q", value)
	}
	return status, nil
}

// StockAssessment é o veredito de saúde do estoque de um produto
type StockAssessment struct {
	Product        LedgerEntry `json:"produto"`
	MonthlyAverage float64     `json:"media_vendas"`
	CurrentStock   int         `json:"estoque_atual"`
	Status         StockStatus `json:"status"`
	Percentage     float64     `json:"percentual_estoque"`
	MonthsAnalyzed int         `json:"meses_analisados"`
}

// StockSummary contém a contagem de produtos por status
type StockSummary struct {
	Total     int `json:"total"`
	Incorrect int `json:"incorreto"`
	Critical  int `json:"critico"`
	Low       int `json:"baixo"`
	Adequate  int `json:"adequado"`
	Excess    int `json:"excesso"`
}

// StockAnalysisInput é o corpo de uma análise de estoque
type StockAnalysisInput struct {
	Ledger []LedgerEntry  `json:"produtos" validate:"required,min=1,dive"`
	Daily  []DailyRecord  `json:"vendas" validate:"required,min=1,dive"`
	Stock  map[string]int `json:"estoque"`
	Status string         `json:"status" validate:"omitempty,oneof=todos incorreto critico baixo adequado excesso"`
}

// StockAnalysis é o resultado de uma análise de estoque
type StockAnalysis struct {
	Assessments []StockAssessment `json:"analise"`
	Summary     StockSummary      `json:"estatisticas"`
}
