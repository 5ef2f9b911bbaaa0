package ledger

import "errors"

var (
	// ErrRecordNotFound возвращается, когда записи с таким ID нет в журнале
	ErrRecordNotFound = errors.New("ledger: record not found")

	// ErrInvalidRecord возвращается, если запись журнала не проходит валидацию
	ErrInvalidRecord = errors.New("ledger: invalid record")

	// ErrDuplicateID возвращается при добавлении записи с уже существующим ID
	ErrDuplicateID = errors.New("ledger: duplicate record id")

	// ErrRead возвращается при ошибке чтения журнала
	ErrRead = errors.New("ledger: failed to read")

	// ErrWrite возвращается при ошибке записи журнала
	ErrWrite = errors.New("ledger: failed to write")
)
