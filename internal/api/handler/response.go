package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/stock-insight-api/infrastructure/spreadsheet"
	"github.com/vfg2006/stock-insight-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-insight-api/internal/usecases/referencing"
	"github.com/vfg2006/stock-insight-api/pkg/apiErrors"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// uploadField é o campo multipart com a planilha enviada
const uploadField = "file"

// defaultMaxUpload é usado quando o limite de upload não está configurado
const defaultMaxUpload = 32 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError converte os erros tipados dos serviços na resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var analysisErr *analyzing.AnalysisError
	if errors.As(err, &analysisErr) {
		var details any
		if len(analysisErr.NotFound) > 0 {
			details = map[string]any{"nao_encontrados": analysisErr.NotFound}
		}
		apiErrors.WriteError(w, analysisErr.Code, analysisErr.Error(), details)
		return
	}

	var referenceErr *referencing.ReferenceError
	if errors.As(err, &referenceErr) {
		apiErrors.WriteError(w, referenceErr.Code, referenceErr.Error(), nil)
		return
	}

	if errors.Is(err, spreadsheet.ErrEmptySheet) || errors.Is(err, spreadsheet.ErrMissingColumns) ||
		errors.Is(err, spreadsheet.ErrUnreadableFile) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro não mapeado no processamento da requisição")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
}

// readUpload abre o arquivo multipart respeitando o limite de tamanho.
// Retorna false quando a resposta de erro já foi escrita.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (file multipart.File, ok bool) {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo maior que o limite permitido", tooLarge.Limit)
			return nil, false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Envie a planilha como multipart/form-data", nil)
		return nil, false
	}

	f, header, err := r.FormFile(uploadField)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'file' obrigatório", nil)
		return nil, false
	}

	log.ForContext(r.Context()).WithFields(log.Fields{
		"file_name": header.Filename,
		"file_size": header.Size,
	}).Debug("Planilha recebida")

	return f, true
}
