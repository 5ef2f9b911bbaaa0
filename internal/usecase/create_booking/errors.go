package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда специалист не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrProviderInactive возвращается, когда специалист не принимает записи
	ErrProviderInactive = errors.New("create_booking: provider is not accepting bookings")

	// ErrSlotNotAvailable возвращается, когда специалист не открыл выбранный слот
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят (клиент может выбрать другое время)
	ErrSlotAlreadyBooked = errors.New("create_booking: slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
