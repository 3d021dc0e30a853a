package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("SALE_KIND_MARKER", "Venda")
	t.Setenv("DATABASE_USER", "estoque")
	t.Setenv("DATABASE_PASSWORD", "segredo")
	t.Setenv("DATABASE_URL", "db:5432/estoque")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "kv_store", cfg.Store.Table)
	assert.Equal(t, "Venda", cfg.Pipeline.SaleKindMarker)
	assert.Equal(t, "CONTA", cfg.Pipeline.AccountSaleMarker)
	assert.Equal(t, "postgres://estoque:segredo@db:5432/estoque", cfg.Database.DSN)
	assert.Equal(t, int64(20), cfg.Server.MaxUploadMB)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "Driver de arquivo válido",
			cfg: Config{
				Store:    Store{Driver: StoreDriverFile, FilePath: "db.json"},
				Security: Security{SecretKey: "chave"},
			},
		},
		{
			name: "S3 sem bucket",
			cfg: Config{
				Store:    Store{Driver: StoreDriverS3, S3Object: "db.json"},
				Security: Security{SecretKey: "chave"},
			},
			wantErr: true,
		},
		{
			name: "Driver desconhecido",
			cfg: Config{
				Store:    Store{Driver: "redis"},
				Security: Security{SecretKey: "chave"},
			},
			wantErr: true,
		},
		{
			name: "Sem chave de criptografia",
			cfg: Config{
				Store: Store{Driver: StoreDriverFile, FilePath: "db.json"},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
