package utils

import (
	"fmt"
	"time"
)

const BRDateLayout = "02/01/2006"

// excelEpoch é a data base das planilhas (dia serial 0)
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ExcelSerialToTime converte o número serial de dias da planilha em data UTC
func ExcelSerialToTime(serial float64) time.Time {
	millis := int64(serial * 86_400_000)
	return excelEpoch.Add(time.Duration(millis) * time.Millisecond)
}

// FormatBRDate formata a data no padrão DD/MM/YYYY
func FormatBRDate(t time.Time) string {
	return t.UTC().Format(BRDateLayout)
}

// ParseBRDate interpreta uma data DD/MM/YYYY em UTC
func ParseBRDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(BRDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q: %w", value, err)
	}
	return t, nil
}

// TimeToExcelSerial faz a conversão inversa de ExcelSerialToTime
func TimeToExcelSerial(t time.Time) float64 {
	return float64(t.UTC().Sub(excelEpoch).Milliseconds()) / 86_400_000
}
