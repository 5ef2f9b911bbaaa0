package bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input")

	// ErrSlotUnavailable возвращается, если специалист не открыл слот
	ErrSlotUnavailable = errors.New("bookings: slot is not available")

	// ErrSlotAlreadyBooked возвращается, если слот уже занят (клиент может выбрать другой)
	ErrSlotAlreadyBooked = errors.New("bookings: slot is already booked")

	// ErrBookingNotFound возвращается, когда бронирование не найдено ни в одном журнале
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrLedgerWriteFailure возвращается, если запись в журнал не удалась
	ErrLedgerWriteFailure = errors.New("bookings: ledger write failure")

	// ErrUnknownSource возвращается, если для источника не зарегистрирован журнал
	ErrUnknownSource = errors.New("bookings: unknown booking source")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")

	// errBookingChanged запись перестала подходить под условие удаления, пока ждали блокировку слота
	errBookingChanged = errors.New("bookings: booking changed before removal")
)
