package create_booking

import (
	"time"

	"github.com/m04kA/PsyBookingService/internal/api/middleware"
	"github.com/m04kA/PsyBookingService/internal/domain"
	createBooking "github.com/m04kA/PsyBookingService/internal/usecase/create_booking"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName      string   `json:"clientName"`
	ClientPhone     string   `json:"clientPhone"`
	ClientEmail     string   `json:"clientEmail,omitempty"`
	ProviderID      string   `json:"providerId"`
	Date            string   `json:"date"` // "2025-09-01"
	Time            string   `json:"time"` // "10:00"
	SessionType     string   `json:"sessionType,omitempty"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	PaymentStatus   string   `json:"paymentStatus,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string  `json:"id"`
	ClientName      string  `json:"clientName"`
	ProviderID      string  `json:"providerId"`
	ProviderName    string  `json:"providerName"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus,omitempty"`
	Source          string  `json:"source"`
	CreatedAt       string  `json:"createdAt"`
}

// sourceFor журнал определяется ролью: анонимный клиент пишет в онлайн-журнал
func sourceFor(user middleware.User, authenticated bool) domain.Source {
	if !authenticated {
		return domain.SourceOnline
	}
	switch user.Role {
	case middleware.RoleProvider:
		return domain.SourceProvider
	case middleware.RoleManager:
		return domain.SourceManager
	default:
		return domain.SourceOnline
	}
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(source domain.Source) (*createBooking.Request, error) {
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		Source:          source,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		ClientEmail:     r.ClientEmail,
		ProviderID:      r.ProviderID,
		Date:            date,
		Time:            slotTime,
		SessionType:     r.SessionType,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}

	// Цену и оплату клиент сайта не задает
	if source != domain.SourceOnline {
		req.Price = r.Price
		req.PaymentStatus = domain.PaymentStatus(r.PaymentStatus)
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ClientName:      resp.ClientName,
		ProviderID:      resp.ProviderID,
		ProviderName:    resp.ProviderName,
		Date:            resp.Date.String(),
		Time:            resp.Time.String(),
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		Source:          resp.Source,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
