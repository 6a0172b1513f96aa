package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const (
	collectionsTable = "collections"

	// pgUndefinedTable код ошибки PostgreSQL для несуществующей таблицы
	pgUndefinedTable = "42P01"
)

// PostgresBackend хранит каждую коллекцию одной строкой таблицы collections (name, payload JSONB)
type PostgresBackend struct {
	db DBExecutor
}

// NewPostgresBackend создает backend поверх подключения к PostgreSQL
func NewPostgresBackend(db DBExecutor) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// Load читает документ коллекции
func (b *PostgresBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	query, args, err := psqlbuilder.Select("payload").
		From(collectionsTable).
		Where(squirrel.Eq{"name": collection}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var payload []byte
	err = b.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapPQError("Load", err)
	}

	return payload, nil
}

// Save перезаписывает документ коллекции одной командой (INSERT ... ON CONFLICT)
// Частичной записи при ошибке не происходит
func (b *PostgresBackend) Save(ctx context.Context, collection string, payload []byte) error {
	query, args, err := psqlbuilder.Insert(collectionsTable).
		Columns("name", "payload").
		Values(collection, string(payload)).
		Suffix("ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		return wrapPQError("Save", err)
	}

	return nil
}

func wrapPQError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pgUndefinedTable {
			return fmt.Errorf("%w: %s: %v", ErrSchemaMissing, op, err)
		}
		return fmt.Errorf("%s: postgres error %s: %v", op, pqErr.Code, err)
	}
	return fmt.Errorf("%s: %v", op, err)
}
