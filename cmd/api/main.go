package main

import (
	"context"

	"github.com/vfg2006/stock-insight-api/infrastructure/repository"
	"github.com/vfg2006/stock-insight-api/internal/api"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/internal/observability/metrics"
	"github.com/vfg2006/stock-insight-api/internal/scheduler"
	"github.com/vfg2006/stock-insight-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-insight-api/internal/usecases/referencing"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	// Define o nível e o formato dos logs com base na configuração
	log.Setup(cfg.App.LogLevel)
	log.L.Infof("Ambiente %s, store %s", cfg.App.Env, cfg.Store.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	referenceRepo, closeStore, err := repository.OpenReferenceProductRepository(ctx, cfg)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao abrir a tabela de preços")
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.L.WithError(err).Warn("Erro ao fechar o store da tabela de preços")
		}
	}()

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	referenceService := referencing.NewService(referenceRepo, cfg.Security.UploadPassword)
	analysisService := analyzing.NewService(referenceRepo, cfg.Pipeline)

	if cfg.Security.UploadPassword == "" {
		log.L.Warn("DB_PASSWORD não configurada: upload da tabela de preços desabilitado")
	}

	referenceBackupService := scheduler.NewReferenceBackupService(referenceRepo, cfg)
	if err := referenceBackupService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de backup da tabela de preços")
	} else {
		log.L.Info("Agendador de backup da tabela de preços iniciado com sucesso")
	}

	server, err := api.New(cfg, analysisService, referenceService, referenceBackupService)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}
