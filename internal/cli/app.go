// Package cli implementa a linha de comando "estoque" para analisar planilhas
// sem subir a API
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vfg2006/stock-insight-api/infrastructure/repository"
	"github.com/vfg2006/stock-insight-api/infrastructure/store"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

// RepositoryOpener abre a tabela de preços configurada
type RepositoryOpener func(ctx context.Context, cfg *config.Config) (repository.ReferenceProductRepository, func() error, error)

// StoreOpener abre o store bruto de um driver
type StoreOpener func(ctx context.Context, cfg *config.Config) (store.BlobStore, func() error, error)

// CLIApp representa a aplicação de linha de comando
type CLIApp struct {
	rootCmd        *cobra.Command
	loadConfig     func() (*config.Config, error)
	openRepository RepositoryOpener
	openStore      StoreOpener
}

func NewCLIApp(version string) *CLIApp {
	app := &CLIApp{
		loadConfig:     config.NewConfig,
		openRepository: repository.OpenReferenceProductRepository,
		openStore:      store.Open,
	}

	rootCmd := &cobra.Command{
		Use:           "estoque",
		Short:         "Análise de vendas e saúde do estoque a partir das planilhas do PDV",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			log.Setup(level)
		},
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Nível de log (debug, info, warn, error)")

	rootCmd.AddCommand(app.newAnalyzeCmd())
	rootCmd.AddCommand(app.newReferenceCmd())

	app.rootCmd = rootCmd
	return app
}

// Execute executa a aplicação
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext executa a aplicação com o contexto informado
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs substitui os argumentos da linha de comando
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// referenceRepository abre o repositório configurado no ambiente
func (app *CLIApp) referenceRepository(ctx context.Context) (repository.ReferenceProductRepository, *config.Config, func() error, error) {
	cfg, err := app.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	repo, closeFn, err := app.openRepository(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return repo, cfg, closeFn, nil
}
