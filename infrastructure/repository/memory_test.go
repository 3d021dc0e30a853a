package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/internal/domain"
)

func TestMemoryReferenceProductRepository(t *testing.T) {
	ctx := context.Background()
	source := []domain.ReferenceProduct{{Item: "LENTE", UnitPrice: 150}}

	repo := NewMemoryReferenceProductRepository(source)
	source[0].UnitPrice = 1

	products, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150.0, products[0].UnitPrice)

	require.NoError(t, repo.Put(ctx, []domain.ReferenceProduct{{Item: "ESTOJO", UnitPrice: 10}}))
	products, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ReferenceProduct{{Item: "ESTOJO", UnitPrice: 10}}, products)
}
