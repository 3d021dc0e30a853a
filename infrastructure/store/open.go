package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vfg2006/stock-insight-api/infrastructure/database/postgres"
	"github.com/vfg2006/stock-insight-api/internal/config"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

// Open cria o BlobStore do driver configurado. A função de fechamento
// libera a conexão com o banco quando o driver for postgres.
func Open(ctx context.Context, cfg *config.Config) (BlobStore, func() error, error) {
	noop := func() error { return nil }
	logger := log.L.WithField("store_driver", cfg.Store.Driver)

	switch cfg.Store.Driver {
	case config.StoreDriverFile:
		logger.Infof("Tabela de preços em arquivo: %s", cfg.Store.FilePath)
		return NewFileStore(cfg.Store.FilePath), noop, nil

	case config.StoreDriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}

		err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			return NewPostgresStore(tx, cfg.Store.Table, cfg.Store.Key).EnsureTable(ctx)
		})
		if err != nil {
			_ = conn.Close()
			return nil, noop, err
		}

		s := NewPostgresStore(conn, cfg.Store.Table, cfg.Store.Key)

		logger.Infof("Tabela de preços no postgres: %s[%s]", cfg.Store.Table, cfg.Store.Key)
		return s, conn.Close, nil

	case config.StoreDriverS3:
		client, err := NewS3Client(ctx, cfg.Store.S3Region)
		if err != nil {
			return nil, noop, err
		}

		logger.Infof("Tabela de preços no S3: s3://%s/%s", cfg.Store.S3Bucket, cfg.Store.S3Object)
		return NewS3Store(client, cfg.Store.S3Bucket, cfg.Store.S3Object), noop, nil
	}

	return nil, noop, fmt.Errorf("store: driver desconhecido %q", cfg.Store.Driver)
}
