package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-insight-api/infrastructure/store"
	"github.com/vfg2006/stock-insight-api/infrastructure/store/mocks"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestReferenceProductRepository(t *testing.T) {
	ctx := context.Background()
	cipher, err := store.NewCipher("segredo")
	require.NoError(t, err)

	products := []domain.ReferenceProduct{
		{Item: "LENTE ZEISS", UnitPrice: 150},
		{Item: "ESTOJO", UnitPrice: 12.5},
	}

	t.Run("Grava criptografado e lê de volta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := mocks.NewMockBlobStore(ctrl)

		var saved []byte
		mockStore.EXPECT().
			Write(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, payload []byte) error {
				saved = payload
				return nil
			})

		repo := NewReferenceProductRepository(mockStore, cipher)
		require.NoError(t, repo.Put(ctx, products))
		assert.NotContains(t, string(saved), "LENTE")
		assert.Contains(t, string(saved), ":")

		mockStore.EXPECT().Read(gomock.Any()).Return(saved, nil)
		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, products, got)
	})

	t.Run("Sem payload salvo retorna tabela vazia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := mocks.NewMockBlobStore(ctrl)
		mockStore.EXPECT().Read(gomock.Any()).Return(nil, store.ErrNotFound)

		repo := NewReferenceProductRepository(mockStore, cipher)
		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Falha do store é propagada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := mocks.NewMockBlobStore(ctrl)
		mockStore.EXPECT().Read(gomock.Any()).Return(nil, errors.New("timeout"))

		repo := NewReferenceProductRepository(mockStore, cipher)
		_, err := repo.Get(ctx)
		assert.ErrorContains(t, err, "timeout")
	})

	t.Run("Payload corrompido é erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := mocks.NewMockBlobStore(ctrl)
		mockStore.EXPECT().Read(gomock.Any()).Return([]byte("lixo"), nil)

		repo := NewReferenceProductRepository(mockStore, cipher)
		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, store.ErrInvalidPayload)
	})
}
