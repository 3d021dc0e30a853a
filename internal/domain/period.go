package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/vfg2006/stock-insight-api/pkg/utils"
)

const periodSeparator = " até "

var (
	ErrInvalidPeriod = errors.New("período inválido")

	periodPattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+até\s+(\d{2}/\d{2}/\d{4})$`)
)

// Period é a janela de observação de um lote de vendas
type Period struct {
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`
}

// Label retorna o período no formato "DD/MM/YYYY até DD/MM/YYYY"
func (p Period) Label() string {
	return utils.FormatBRDate(p.Start) + periodSeparator + utils.FormatBRDate(p.End)
}

// MonthsSpanned conta os meses de calendário cobertos pelo período, no mínimo 1
func (p Period) MonthsSpanned() int {
	months := (p.End.Year()-p.Start.Year())*12 + int(p.End.Month()) - int(p.Start.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// ParsePeriodLabel interpreta um rótulo "DD/MM/YYYY até DD/MM/YYYY"
func ParsePeriodLabel(label string) (Period, error) {
	match := periodPattern.FindStringSubmatch(label)
	if match == nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, label)
	}

	start, err := utils.ParseBRDate(match[1])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	end, err := utils.ParseBRDate(match[2])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	return Period{Start: start, End: end}, nil
}
