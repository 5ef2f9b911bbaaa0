package kv

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключ отсутствует в хранилище
	ErrKeyNotFound = errors.New("kv: key not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("kv: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса к бэкенду
	ErrExecQuery = errors.New("kv: failed to execute query")
)
