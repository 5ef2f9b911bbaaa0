package specialistservice

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("specialistservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("specialistservice client: invalid response")

	// ErrServiceDegraded возвращается, когда SpecialistService недоступен и в конфиге нет данных
	ErrServiceDegraded = errors.New("specialistservice unavailable: graceful degradation applied")
)
