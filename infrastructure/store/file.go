package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

// FileStore grava o payload em um arquivo local (db.json)
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, pkgerrors.Wrapf(err, "store: falha ao ler %s", s.path)
	}
	return data, nil
}

// Write grava em um arquivo temporário e renomeia, para não deixar o payload pela metade
func (s *FileStore) Write(_ context.Context, payload []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.Wrapf(err, "store: falha ao criar diretório %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, "store: falha ao criar arquivo temporário")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(err, "store: falha ao gravar payload")
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrap(err, "store: falha ao fechar arquivo temporário")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return pkgerrors.Wrapf(err, "store: falha ao substituir %s", s.path)
	}
	return nil
}
