package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/infrastructure/store"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

func TestMigrateStore(t *testing.T) {
	log.SetupTestLogger()
	ctx := context.Background()

	dir := t.TempDir()
	stores := map[string]store.BlobStore{
		config.StoreDriverFile:     store.NewFileStore(filepath.Join(dir, "origem.json")),
		config.StoreDriverPostgres: store.NewFileStore(filepath.Join(dir, "destino.json")),
	}

	app := NewCLIApp("test")
	app.openStore = func(ctx context.Context, cfg *config.Config) (store.BlobStore, func() error, error) {
		return stores[cfg.Store.Driver], func() error { return nil }, nil
	}
	cfg := &config.Config{Store: config.Store{Driver: config.StoreDriverFile}}

	t.Run("Origem vazia", func(t *testing.T) {
		_, err := app.migrateStore(ctx, cfg, config.StoreDriverFile, config.StoreDriverPostgres)
		assert.ErrorIs(t, err, ErrNothingToMigrate)
	})

	t.Run("Copia o payload sem alterar", func(t *testing.T) {
		require.NoError(t, stores[config.StoreDriverFile].Write(ctx, []byte("aabb:ccdd")))

		size, err := app.migrateStore(ctx, cfg, config.StoreDriverFile, config.StoreDriverPostgres)
		require.NoError(t, err)
		assert.Equal(t, 9, size)

		copied, err := stores[config.StoreDriverPostgres].Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("aabb:ccdd"), copied)
		assert.Equal(t, config.StoreDriverFile, cfg.Store.Driver)
	})

	t.Run("Origem e destino iguais", func(t *testing.T) {
		_, err := app.migrateStore(ctx, cfg, config.StoreDriverFile, config.StoreDriverFile)
		assert.Error(t, err)
	})
}
