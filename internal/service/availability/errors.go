package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной дате или времени
	ErrInvalidInput = errors.New("availability: invalid input")

	// ErrInternal возвращается, если не удалось прочитать календарь специалиста
	ErrInternal = errors.New("availability: internal error")
)
