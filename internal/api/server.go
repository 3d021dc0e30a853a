package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/stock-insight-api/internal/api/handler"
	"github.com/vfg2006/stock-insight-api/internal/api/handler/router"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/internal/scheduler"
	"github.com/vfg2006/stock-insight-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-insight-api/internal/usecases/referencing"
	"github.com/vfg2006/stock-insight-api/pkg/log"
	"github.com/vfg2006/stock-insight-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	analysisService analyzing.AnalysisService,
	referenceService referencing.ReferenceService,
	referenceBackupService *scheduler.ReferenceBackupService,
) (*Server, error) {
	cronServices := handler.CronJobServices{}
	if referenceBackupService != nil {
		cronServices.ReferenceBackupService = referenceBackupService
	}

	maxUploadBytes := config.Server.MaxUploadMB << 20

	routes := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.ReferenceProducts(referenceService, maxUploadBytes)...),
		router.WithRoutes(handler.Sales(analysisService, handler.SalesUploadOptions{
			MaxUploadBytes: maxUploadBytes,
			SheetName:      config.Pipeline.SalesSheet,
		})...),
		router.WithRoutes(handler.Stock(analysisService)...),
		router.WithRoutes(handler.CronJobs(cronServices, referenceService)...),
	}
	if config.Metrics.Enabled {
		routes = append(routes, router.WithRoutes(handler.Metrics(config.Metrics.Path)...))
	}

	middleware.AllowOrigins(config.Server.CorsOrigins...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(router.New(routes...)),
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       config.Server.ReadTimeout,
			WriteTimeout:      config.Server.WriteTimeout,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}
