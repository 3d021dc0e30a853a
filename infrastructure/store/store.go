// Package store guarda o payload criptografado da tabela de preços
package store

import (
	"context"
	"errors"
)

// ErrNotFound indica que ainda não existe payload salvo
var ErrNotFound = errors.New("store: payload não encontrado")

// BlobStore lê e grava um único payload opaco
type BlobStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}
