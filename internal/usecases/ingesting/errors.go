package ingesting

import "errors"

var (
	ErrMissingSeparator = errors.New("separador de quantidade ausente")
	ErrInvalidQuantity  = errors.New("quantidade inválida")
	ErrInvalidDate      = errors.New("data serial inválida")
	ErrEmptyLine        = errors.New("linha de descrição vazia")
)
