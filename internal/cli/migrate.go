package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/vfg2006/stock-insight-api/infrastructure/store"
	"github.com/vfg2006/stock-insight-api/internal/config"
)

// ErrNothingToMigrate indica que o store de origem não tem tabela gravada
var ErrNothingToMigrate = errors.New("store de origem sem tabela de preços")

func (app *CLIApp) newReferenceMigrateCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copia a tabela de preços criptografada entre drivers de store (file, postgres, s3)",
		Example: `  estoque reference migrate --from file --to postgres
  STORE_FILE_PATH=antigo/db.json estoque reference migrate --from file --to s3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			size, err := app.migrateStore(ctx, cfg, from, to)
			if err != nil {
				return err
			}

			pterm.Success.Printfln("Tabela de preços copiada de %s para %s (%d bytes)", from, to, size)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", config.StoreDriverFile, "Driver de origem")
	cmd.Flags().StringVar(&to, "to", "", "Driver de destino")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// migrateStore copia o payload sem descriptografar; os dois stores usam a mesma SECRET_KEY
func (app *CLIApp) migrateStore(ctx context.Context, cfg *config.Config, from, to string) (int, error) {
	if from == to {
		return 0, fmt.Errorf("origem e destino iguais: %s", from)
	}

	source, closeSource, err := app.openStore(ctx, withDriver(cfg, from))
	if err != nil {
		return 0, fmt.Errorf("erro ao abrir store de origem: %w", err)
	}
	defer closeSource()

	payload, err := source.Read(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrNothingToMigrate
		}
		return 0, fmt.Errorf("erro ao ler store de origem: %w", err)
	}

	target, closeTarget, err := app.openStore(ctx, withDriver(cfg, to))
	if err != nil {
		return 0, fmt.Errorf("erro ao abrir store de destino: %w", err)
	}
	defer closeTarget()

	if err := target.Write(ctx, payload); err != nil {
		return 0, fmt.Errorf("erro ao gravar store de destino: %w", err)
	}

	return len(payload), nil
}

func withDriver(cfg *config.Config, driver string) *config.Config {
	copied := *cfg
	copied.Store.Driver = driver
	return &copied
}
