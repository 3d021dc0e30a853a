package analyzing

import (
	"errors"
	"fmt"
)

var (
	ErrNoSaleRows                = errors.New("nenhuma linha de venda válida na planilha")
	ErrReferenceTableUnavailable = errors.New("tabela de preços vazia ou indisponível")
	ErrEmptyResult               = errors.New("nenhum produto da planilha foi encontrado na tabela de preços")
	ErrUnsupportedFormat         = errors.New("formato de exportação não suportado")
	ErrExportFailed              = errors.New("falha ao gerar arquivo de exportação")
)

// AnalysisError é um erro do pipeline com o código de API correspondente
type AnalysisError struct {
	Err      error    // Erro base
	Code     string   // Código de erro para API
	Details  string   // Detalhes adicionais
	NotFound []string // Itens sem preço, quando o lote inteiro falhou por isso
}

func (e *AnalysisError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IsBatchFatal indica erros que impedem a publicação do lote
func IsBatchFatal(err error) bool {
	return errors.Is(err, ErrNoSaleRows) ||
		errors.Is(err, ErrReferenceTableUnavailable) ||
		errors.Is(err, ErrEmptyResult)
}

func NewAnalysisError(baseErr error, code string, details string) *AnalysisError {
	return &AnalysisError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
