package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/PsyBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string             `json:"date"`
	Slots     []string           `json:"slots"`
	Providers []ProviderResponse `json:"providers,omitempty"`
}

// ProviderResponse специалист, свободный в запрошенное время
type ProviderResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ToUseCaseRequest конвертирует query-параметры в модель use case
func ToUseCaseRequest(dateStr, timeStr string) (*getAvailableSlots.Request, error) {
	date, err := types.NewDateStringFromString(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{Date: date}
	if timeStr != "" {
		slotTime, err := types.NewTimeStringFromString(timeStr)
		if err != nil {
			return nil, err
		}
		req.Time = slotTime
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:  resp.Date.String(),
		Slots: make([]string, 0, len(resp.Slots)),
	}
	for _, t := range resp.Slots {
		out.Slots = append(out.Slots, t.String())
	}
	for _, p := range resp.Providers {
		out.Providers = append(out.Providers, ProviderResponse{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	return out
}
