package kv

import (
	"context"
	"database/sql"
)

// Имена коллекций
const (
	CollectionProviders    = "providers"
	CollectionAppointments = "appointments"
)

// Backend хранилище документов: одна коллекция целиком хранится одним JSON-документом
// Отсутствующая коллекция возвращается как nil без ошибки
type Backend interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, payload []byte) error
}

// DBExecutor интерфейс для выполнения SQL запросов
// Реализуется *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Metrics интерфейс для учета обращений к хранилищу
type Metrics interface {
	RecordStorageOperation(collection, operation string, err error)
}
