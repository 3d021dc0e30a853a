package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/internal/domain"
)

func TestOpenReferenceProductRepository(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Store:    config.Store{Driver: config.StoreDriverFile, FilePath: filepath.Join(t.TempDir(), "db.json")},
		Security: config.Security{SecretKey: "chave-de-teste"},
	}

	t.Run("Grava e lê a tabela criptografada em arquivo", func(t *testing.T) {
		repo, closeFn, err := OpenReferenceProductRepository(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()

		products, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)

		require.NoError(t, repo.Put(ctx, []domain.ReferenceProduct{{Item: "LENTE", UnitPrice: 150}}))

		reopened, closeAgain, err := OpenReferenceProductRepository(ctx, cfg)
		require.NoError(t, err)
		defer closeAgain()

		products, err = reopened.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.ReferenceProduct{{Item: "LENTE", UnitPrice: 150}}, products)
	})

	t.Run("Sem chave de criptografia", func(t *testing.T) {
		noKey := *cfg
		noKey.Security.SecretKey = ""

		_, _, err := OpenReferenceProductRepository(ctx, &noKey)
		assert.Error(t, err)
	})

	t.Run("Driver desconhecido", func(t *testing.T) {
		unknown := *cfg
		unknown.Store.Driver = "redis"

		_, _, err := OpenReferenceProductRepository(ctx, &unknown)
		assert.Error(t, err)
	})
}
