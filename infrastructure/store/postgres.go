package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/stock-insight-api/infrastructure/database/postgres"
)

// PostgresStore guarda o payload em uma tabela chave/valor
type PostgresStore struct {
	db    postgres.Queryer
	table string
	key   string
}

func NewPostgresStore(db postgres.Queryer, table, key string) *PostgresStore {
	return &PostgresStore{
		db:    db,
		table: table,
		key:   key,
	}
}

// EnsureTable cria a tabela chave/valor se ela ainda não existir
func (s *PostgresStore) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return pkgerrors.Wrapf(err, "store: falha ao criar tabela %s", s.table)
	}
	return nil
}

func (s *PostgresStore) Read(ctx context.Context) ([]byte, error) {
	query, args, err := squirrel.
		Select("value").
		From(s.table).
		Where(squirrel.Eq{"key": s.key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var value string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, pkgerrors.Wrap(err, "store: falha ao ler payload")
	}

	return []byte(value), nil
}

func (s *PostgresStore) Write(ctx context.Context, payload []byte) error {
	query, args, err := squirrel.
		Insert(s.table).
		Columns("key", "value", "updated_at").
		Values(s.key, string(payload), squirrel.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return pkgerrors.Wrap(err, "store: falha ao gravar payload")
	}
	return nil
}
