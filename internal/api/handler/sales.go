package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/stock-insight-api/infrastructure/spreadsheet"
	"github.com/vfg2006/stock-insight-api/internal/usecases/aggregating"
	"github.com/vfg2006/stock-insight-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

// SalesUploadOptions controla a leitura da planilha de vendas
type SalesUploadOptions struct {
	MaxUploadBytes int64
	SheetName      string
}

// UploadSales processa a planilha de vendas e devolve o razão de produtos, a
// série diária e o período. O parâmetro q filtra o razão pelo nome do produto.
func UploadSales(service analyzing.AnalysisService, opts SalesUploadOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, ok := readUpload(w, r, opts.MaxUploadBytes)
		if !ok {
			return
		}
		defer file.Close()

		rows, err := spreadsheet.ReadSalesRows(file, opts.SheetName)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Planilha de vendas inválida")
			writeServiceError(w, r, err)
			return
		}

		result, err := service.ProcessBatch(r.Context(), rows)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if term := strings.TrimSpace(r.FormValue("q")); term != "" {
			result.Ledger = aggregating.SearchLedger(result.Ledger, term)
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}
