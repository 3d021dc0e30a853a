package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/stock-insight-api/internal/usecases/referencing"
)

func (app *CLIApp) newReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Gerencia a tabela de preços de referência",
	}

	cmd.AddCommand(app.newReferenceImportCmd())
	cmd.AddCommand(app.newReferenceListCmd())
	cmd.AddCommand(app.newReferenceMigrateCmd())
	return cmd
}

func (app *CLIApp) newReferenceImportCmd() *cobra.Command {
	var file, password string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Substitui a tabela de preços pela planilha informada",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runReferenceImport(cmd.Context(), file, password)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Planilha com as colunas Descrição e Preço de Venda")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Senha de confirmação (DB_PASSWORD)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (app *CLIApp) runReferenceImport(ctx context.Context, file, password string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repo, cfg, closeFn, err := app.referenceRepository(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	service := referencing.NewService(repo, cfg.Security.UploadPassword)
	if err := service.ValidatePassword(password); err != nil {
		return err
	}

	products, err := readReferenceFile(file)
	if err != nil {
		return err
	}

	result, err := service.Import(ctx, products)
	if err != nil {
		return err
	}

	printImportResult(result)
	return nil
}

func (app *CLIApp) newReferenceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista a tabela de preços armazenada",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			repo, cfg, closeFn, err := app.referenceRepository(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			products, err := referencing.NewService(repo, cfg.Security.UploadPassword).List(ctx)
			if err != nil {
				return err
			}

			if len(products) == 0 {
				return fmt.Errorf("tabela de preços vazia; use 'estoque reference import'")
			}

			printReferenceProducts(products)
			return nil
		},
	}
}
