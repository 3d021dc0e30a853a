package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-insight-api/infrastructure/repository"
	"github.com/vfg2006/stock-insight-api/infrastructure/spreadsheet"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/internal/observability/metrics"
)

const snapshotPrefix = "tabela_precos_"

// ReferenceBackupConfig representa a configuração do backup da tabela de preços
type ReferenceBackupConfig struct {
	CronSchedule string
	Dir          string
	SyncEnabled  bool
}

// ReferenceBackupService grava periodicamente uma cópia xlsx da tabela de preços
type ReferenceBackupService struct {
	scheduler           *gocron.Scheduler
	config              ReferenceBackupConfig
	references          repository.ReferenceProductRepository
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSnapshot        string
	lastError           string
}

func NewReferenceBackupService(references repository.ReferenceProductRepository, appConfig *config.Config) *ReferenceBackupService {
	backupConfig := ReferenceBackupConfig{
		CronSchedule: appConfig.ReferenceBackup.CronSchedule,
		Dir:          appConfig.ReferenceBackup.Dir,
		SyncEnabled:  appConfig.ReferenceBackup.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": backupConfig.CronSchedule,
		"dir":           backupConfig.Dir,
		"sync_enabled":  backupConfig.SyncEnabled,
	}).Info("Configuração do backup da tabela de preços carregada")

	return &ReferenceBackupService{
		scheduler:  gocron.NewScheduler(time.UTC),
		config:     backupConfig,
		references: references,
		now:        time.Now,
	}
}

// Start agenda o backup e para o agendador quando o contexto é cancelado
func (s *ReferenceBackupService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Backup da tabela de preços desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de backup da tabela de preços")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.backup(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar backup da tabela de preços: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de backup da tabela de preços")
		s.scheduler.Stop()
	}()

	return nil
}

// backup executa uma rodada, ignorando chamadas enquanto outra está em andamento
func (s *ReferenceBackupService) backup(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Backup da tabela de preços já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	path, err := s.RunOnce(ctx)
	metrics.ObserveReferenceBackup(err)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao gravar backup da tabela de preços")
		return
	}

	s.lastError = ""
	s.lastSnapshot = path
	s.lastSyncCompletedAt = s.now()
}

// RunOnce grava a cópia atual da tabela de preços e retorna o caminho do arquivo.
// Tabela vazia não gera arquivo.
func (s *ReferenceBackupService) RunOnce(ctx context.Context) (string, error) {
	products, err := s.references.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("erro ao ler tabela de preços: %w", err)
	}

	if len(products) == 0 {
		logrus.Info("Tabela de preços vazia, backup não gerado")
		return "", nil
	}

	content, err := spreadsheet.BuildReferenceSnapshotXLSX(products)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar planilha do backup: %w", err)
	}

	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar diretório de backup: %w", err)
	}

	path := filepath.Join(s.config.Dir, snapshotPrefix+s.now().UTC().Format("20060102_150405")+".xlsx")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("erro ao gravar backup: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"products": len(products),
	}).Info("Backup da tabela de preços gravado")

	return path, nil
}

// TriggerManualSync inicia manualmente um backup
func (s *ReferenceBackupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Backup da tabela de preços já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando backup manual da tabela de preços")
	go s.backup(context.Background())
}

// GetStatus retorna o status atual do backup
func (s *ReferenceBackupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_snapshot":          s.lastSnapshot,
		"last_error":             s.lastError,
	}
}
