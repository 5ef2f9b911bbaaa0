package clients

import "errors"

var (
	// ErrInvalidInput возвращается, если телефон пустой после нормализации
	ErrInvalidInput = errors.New("clients: invalid phone")

	// ErrClientNotFound возвращается, если клиента с таким телефоном нет ни в одном журнале
	ErrClientNotFound = errors.New("clients: client not found")

	// ErrInternal возвращается при ошибках чтения журналов
	ErrInternal = errors.New("clients: internal error")
)
