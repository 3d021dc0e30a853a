package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/stock-insight-api/pkg/log"
)

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().UTC().Format(time.RFC3339)))
		if err != nil {
			log.L.WithError(err).Warn("Erro ao responder healthcheck")
		}
	})
}
