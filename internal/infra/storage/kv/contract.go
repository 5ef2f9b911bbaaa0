package kv

import (
	"context"
	"database/sql"
	"time"
)

// Store хранилище "ключ -> JSON-значение".
// Get возвращает ErrKeyNotFound, если ключ отсутствует.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// DBExecutor подмножество *sql.DB, которое нужно PostgresStore
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Observer получает длительность каждой операции хранилища
type Observer interface {
	ObserveKVOperation(backend, operation string, err error, duration time.Duration)
}
