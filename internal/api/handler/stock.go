package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-insight-api/pkg/apiErrors"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

func decodeAnalysisInput(w http.ResponseWriter, r *http.Request) (domain.StockAnalysisInput, bool) {
	var input domain.StockAnalysisInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.ForContext(r.Context()).WithError(err).Debug("Corpo da análise inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
		return input, false
	}
	return input, true
}

// AnalyzeStock classifica o estoque atual contra o razão de vendas enviado
func AnalyzeStock(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeAnalysisInput(w, r)
		if !ok {
			return
		}

		analysis, err := service.AnalyzeStock(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, analysis)
	}
}

// ExportIncorrectStock devolve a planilha ou o PDF com os produtos de estoque incorreto
func ExportIncorrectStock(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeAnalysisInput(w, r)
		if !ok {
			return
		}

		artifact, err := service.ExportIncorrect(r.Context(), input, r.URL.Query().Get("format"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
		w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Content)))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(artifact.Content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar arquivo exportado")
		}
	}
}
