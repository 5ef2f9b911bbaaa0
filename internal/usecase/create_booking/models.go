package create_booking

import (
	"time"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Source          domain.Source        // Журнал, в который пишется бронь
	ClientName      string               // Имя клиента
	ClientPhone     string               // Телефон в любом формате
	ClientEmail     string               // Email (опционально)
	ProviderID      string               // ID специалиста
	Date            types.DateString     // Дата сессии
	Time            types.TimeString     // Время начала слота (например, "10:00")
	SessionType     string               // Формат сессии (опционально)
	DurationMinutes int                  // Длительность, 0 - по умолчанию
	Price           *float64             // Цена; если не указана, берется из справочника
	PaymentStatus   domain.PaymentStatus // Статус оплаты (опционально)
	Notes           *string              // Комментарий (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string
	ClientName      string
	ProviderID      string
	ProviderName    string
	Date            types.DateString
	Time            types.TimeString
	DurationMinutes int
	Price           float64
	Status          string
	PaymentStatus   string
	Source          string
	CreatedAt       time.Time
}
