package handler

import (
	"net/http"

	"github.com/vfg2006/stock-insight-api/infrastructure/spreadsheet"
	"github.com/vfg2006/stock-insight-api/internal/observability/metrics"
	"github.com/vfg2006/stock-insight-api/internal/usecases/referencing"
	"github.com/vfg2006/stock-insight-api/pkg/apiErrors"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

type passwordRequest struct {
	Password string `json:"password"`
}

// ValidatePassword confere a senha de confirmação antes do upload da tabela de preços
func ValidatePassword(service referencing.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.Password == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Senha obrigatória", nil)
			return
		}

		if err := service.ValidatePassword(req.Password); err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]bool{"valid": true})
	}
}

// ListReferenceProducts retorna a tabela de preços descriptografada
func ListReferenceProducts(service referencing.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := service.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"count":    len(products),
			"produtos": products,
		})
	}
}

// ImportReferenceProducts substitui a tabela de preços pela planilha enviada
func ImportReferenceProducts(service referencing.ReferenceService, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, ok := readUpload(w, r, maxUploadBytes)
		if !ok {
			return
		}
		defer file.Close()

		products, err := spreadsheet.ReadReferenceProducts(file)
		if err != nil {
			metrics.ObserveReferenceImport(err)
			log.ForContext(r.Context()).WithError(err).Warn("Planilha de produtos inválida")
			writeServiceError(w, r, err)
			return
		}

		result, err := service.Import(r.Context(), products)
		metrics.ObserveReferenceImport(err)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}
