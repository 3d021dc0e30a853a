package repository

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/stock-insight-api/infrastructure/store"
	"github.com/vfg2006/stock-insight-api/internal/config"
)

// OpenReferenceProductRepository monta o repositório da tabela de preços sobre
// o store e a chave configurados
func OpenReferenceProductRepository(ctx context.Context, cfg *config.Config) (ReferenceProductRepository, func() error, error) {
	cipher, err := store.NewCipher(cfg.Security.SecretKey)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "repository: chave de criptografia inválida")
	}

	blobStore, closeFn, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "repository: falha ao abrir store")
	}

	return NewReferenceProductRepository(blobStore, cipher), closeFn, nil
}
