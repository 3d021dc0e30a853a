package utils

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidCurrency indica um valor monetário que não pôde ser interpretado
var ErrInvalidCurrency = errors.New("valor monetário inválido")

const currencySymbol = "R$"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseBRLCurrency converte um texto no formato "R$ 1.234,56" para decimal.
// O separador de milhar é "." e o separador decimal é ",".
func ParseBRLCurrency(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, currencySymbol)
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if cleaned == "" {
		return decimal.Zero, ErrInvalidCurrency
	}

	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidCurrency
	}

	return amount, nil
}

// DecimalToFloat arredonda para duas casas e converte para float64
func DecimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// FormatBRL formata um valor como "R$ 1.234,56"
func FormatBRL(value float64) string {
	fixed := decimal.NewFromFloat(value).Abs().StringFixed(2)
	integer, fraction, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if value < 0 {
		sign = "-"
	}
	return sign + currencySymbol + " " + grouped.String() + "," + fraction
}
