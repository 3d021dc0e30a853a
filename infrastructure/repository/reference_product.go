package repository

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/stock-insight-api/infrastructure/store"
	"github.com/vfg2006/stock-insight-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ReferenceProductRepository interface {
	Get(ctx context.Context) ([]domain.ReferenceProduct, error)
	Put(ctx context.Context, products []domain.ReferenceProduct) error
}

// PayloadCipher protege a lista de produtos antes de ir para o store
type PayloadCipher interface {
	Encrypt(plain []byte) (string, error)
	Decrypt(payload string) ([]byte, error)
}

type referenceProductRepository struct {
	store  store.BlobStore
	cipher PayloadCipher
}

func NewReferenceProductRepository(blobStore store.BlobStore, cipher PayloadCipher) ReferenceProductRepository {
	return &referenceProductRepository{
		store:  blobStore,
		cipher: cipher,
	}
}

// Get lê e descriptografa a tabela de preços. Sem payload salvo retorna lista vazia.
func (r *referenceProductRepository) Get(ctx context.Context) ([]domain.ReferenceProduct, error) {
	payload, err := r.store.Read(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []domain.ReferenceProduct{}, nil
		}
		return nil, err
	}

	plain, err := r.cipher.Decrypt(string(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "repository: falha ao descriptografar tabela de preços")
	}

	products := make([]domain.ReferenceProduct, 0)
	if err := json.Unmarshal(plain, &products); err != nil {
		return nil, pkgerrors.Wrap(err, "repository: tabela de preços corrompida")
	}

	return products, nil
}

// Put substitui a tabela de preços inteira
func (r *referenceProductRepository) Put(ctx context.Context, products []domain.ReferenceProduct) error {
	if products == nil {
		products = []domain.ReferenceProduct{}
	}

	plain, err := json.Marshal(products)
	if err != nil {
		return err
	}

	payload, err := r.cipher.Encrypt(plain)
	if err != nil {
		return pkgerrors.Wrap(err, "repository: falha ao criptografar tabela de preços")
	}

	return r.store.Write(ctx, []byte(payload))
}
