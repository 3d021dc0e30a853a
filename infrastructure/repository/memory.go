package repository

import (
	"context"
	"sync"

	"github.com/vfg2006/stock-insight-api/internal/domain"
)

// memoryReferenceProductRepository guarda a tabela de preços só em memória.
// Usado pela linha de comando quando a tabela vem de um arquivo local.
type memoryReferenceProductRepository struct {
	mu       sync.RWMutex
	products []domain.ReferenceProduct
}

func NewMemoryReferenceProductRepository(products []domain.ReferenceProduct) ReferenceProductRepository {
	return &memoryReferenceProductRepository{products: copyProducts(products)}
}

func (r *memoryReferenceProductRepository) Get(_ context.Context) ([]domain.ReferenceProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyProducts(r.products), nil
}

func (r *memoryReferenceProductRepository) Put(_ context.Context, products []domain.ReferenceProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = copyProducts(products)
	return nil
}

func copyProducts(products []domain.ReferenceProduct) []domain.ReferenceProduct {
	out := make([]domain.ReferenceProduct, len(products))
	copy(out, products)
	return out
}
