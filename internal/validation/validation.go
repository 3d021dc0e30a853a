// Package validation aplica o schema das entradas da análise de estoque
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/pkg/utils"
)

// ErrInvalidData indica razão ou série diária ausentes ou mal formados
var ErrInvalidData = errors.New("Dados inválidos ou incompletos")

// FieldError descreve um campo que falhou na validação
type FieldError struct {
	Field string `json:"campo"`
	Rule  string `json:"regra"`
	Value any    `json:"valor,omitempty"`
}

// Result é o resultado tagueado de uma validação
type Result struct {
	Valid  bool         `json:"valido"`
	Errors []FieldError `json:"erros,omitempty"`
}

// Details lista os campos rejeitados no formato "campo:regra"
func (r Result) Details() string {
	fields := make([]string, 0, len(r.Errors))
	for _, fe := range r.Errors {
		fields = append(fields, fe.Field+":"+fe.Rule)
	}
	return strings.Join(fields, ", ")
}

// Err retorna ErrInvalidData quando o resultado é inválido
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidData, r.Details())
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		err := validate.RegisterValidation("brdate", func(fl validator.FieldLevel) bool {
			_, err := utils.ParseBRDate(fl.Field().String())
			return err == nil
		})
		if err != nil {
			panic(fmt.Sprintf("validation: falha ao registrar a regra brdate: %v", err))
		}
	})
	return validate
}

func toResult(err error) Result {
	if err == nil {
		return Result{Valid: true}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Result{Valid: false, Errors: []FieldError{{Field: "", Rule: err.Error()}}}
	}

	result := Result{Valid: false}
	for _, fe := range validationErrors {
		result.Errors = append(result.Errors, FieldError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Value: fe.Value(),
		})
	}
	return result
}

type ledgerEnvelope struct {
	Ledger []domain.LedgerEntry `json:"produtos" validate:"required,min=1,dive"`
}

type dailyEnvelope struct {
	Daily []domain.DailyRecord `json:"vendas" validate:"required,min=1,dive"`
}

type referenceEnvelope struct {
	Products []domain.ReferenceProduct `json:"produtos" validate:"required,min=1,dive"`
}

// ValidateLedger exige razão não vazio com item, período e quantidade não negativa
func ValidateLedger(entries []domain.LedgerEntry) Result {
	return toResult(instance().Struct(ledgerEnvelope{Ledger: entries}))
}

// ValidateDailySeries exige série não vazia com datas DD/MM/YYYY
func ValidateDailySeries(series []domain.DailyRecord) Result {
	return toResult(instance().Struct(dailyEnvelope{Daily: series}))
}

// ValidateReferenceProducts exige tabela não vazia com nome e preço positivo
func ValidateReferenceProducts(products []domain.ReferenceProduct) Result {
	return toResult(instance().Struct(referenceEnvelope{Products: products}))
}

// ValidateAnalysisInput valida o corpo de uma análise de estoque de uma vez
func ValidateAnalysisInput(input domain.StockAnalysisInput) Result {
	return toResult(instance().Struct(input))
}
