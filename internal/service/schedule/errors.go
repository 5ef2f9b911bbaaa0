package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input")

	// ErrSlotUnavailable возвращается при бронировании слота, который специалист не открыл
	ErrSlotUnavailable = errors.New("schedule: slot is not available")

	// ErrSlotAlreadyBooked возвращается при бронировании уже занятого слота
	ErrSlotAlreadyBooked = errors.New("schedule: slot is already booked")

	// ErrSlotLocked возвращается при попытке закрыть забронированный слот
	ErrSlotLocked = errors.New("schedule: slot is booked and cannot be deactivated")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("schedule: internal error")
)
