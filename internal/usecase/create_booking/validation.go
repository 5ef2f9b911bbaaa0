package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/service/clients"
)

// Длина нормализованного номера: 7 и 10 цифр
const phoneDigits = 11

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Source.IsValid() {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}

	if !domain.IsValidProviderID(req.ProviderID) {
		return fmt.Errorf("%w: invalid providerId", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	// Проверяем, что дата и время указаны
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	// Онлайн-клиент потом входит по телефону, поэтому телефон обязателен
	if req.Source == domain.SourceOnline && strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}
	if req.ClientPhone != "" && len(clients.Normalize(req.ClientPhone)) != phoneDigits {
		return fmt.Errorf("%w: invalid clientPhone", ErrInvalidInput)
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}
