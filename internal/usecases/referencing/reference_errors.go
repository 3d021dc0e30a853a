package referencing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPassword       = errors.New("senha inválida")
	ErrPasswordNotConfigured = errors.New("senha de confirmação não configurada")
	ErrEmptyTable            = errors.New("nenhum produto válido na tabela de preços")
	ErrStoreOperation        = errors.New("erro ao acessar a tabela de preços")
)

// ReferenceError é um erro com o código de API da operação na tabela de preços
type ReferenceError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *ReferenceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

func NewReferenceError(baseErr error, code string, details string) *ReferenceError {
	return &ReferenceError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
