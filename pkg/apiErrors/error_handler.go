package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de acesso (1000-1999)
	ErrInvalidPassword       = "AUTH_001" // Senha de confirmação inválida
	ErrPasswordNotConfigured = "AUTH_002" // Senha de confirmação não configurada

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidData         = "VAL_004" // Razão ou série diária inválidos ou incompletos
	ErrFileTooLarge        = "VAL_005" // Arquivo enviado maior que o limite
	ErrNotFound            = "VAL_006" // Rota não encontrada
	ErrMethodNotAllowed    = "VAL_007" // Método não suportado pela rota

	// Erros de dados do lote (3000-3999)
	ErrEmptyResult               = "DATA_001" // Nenhum item do lote foi resolvido
	ErrReferenceTableUnavailable = "DATA_002" // Tabela de preços vazia ou inacessível
	ErrNoSaleRows                = "DATA_003" // Planilha sem linhas de venda válidas

	// Erros do servidor (5000-5999)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrStoreOperation  = "SRV_002" // Erro de operação no armazenamento
	ErrExternalService = "SRV_003" // Erro em serviço externo
	ErrExportFailed    = "SRV_004" // Falha ao gerar arquivo de exportação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidPassword:           http.StatusUnauthorized,
	ErrPasswordNotConfigured:     http.StatusServiceUnavailable,
	ErrInvalidRequest:            http.StatusBadRequest,
	ErrMissingRequiredData:       http.StatusBadRequest,
	ErrInvalidFormat:             http.StatusBadRequest,
	ErrInvalidData:               http.StatusUnprocessableEntity,
	ErrFileTooLarge:              http.StatusRequestEntityTooLarge,
	ErrNotFound:                  http.StatusNotFound,
	ErrMethodNotAllowed:          http.StatusMethodNotAllowed,
	ErrEmptyResult:               http.StatusUnprocessableEntity,
	ErrReferenceTableUnavailable: http.StatusServiceUnavailable,
	ErrNoSaleRows:                http.StatusUnprocessableEntity,
	ErrInternalServer:            http.StatusInternalServerError,
	ErrStoreOperation:            http.StatusInternalServerError,
	ErrExternalService:           http.StatusBadGateway,
	ErrExportFailed:              http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}
