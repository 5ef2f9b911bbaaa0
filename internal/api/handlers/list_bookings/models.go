package list_bookings

import (
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Filter фильтр списка бронирований из query-параметров
type Filter struct {
	ProviderID string
	Date       types.DateString
	Status     domain.BookingStatus
}

// ParseFilter разбирает providerId, date и status
func ParseFilter(providerID, dateStr, statusStr string) (Filter, error) {
	f := Filter{ProviderID: providerID}

	if dateStr != "" {
		date, err := types.NewDateStringFromString(dateStr)
		if err != nil {
			return Filter{}, err
		}
		f.Date = date
	}

	if statusStr != "" {
		status := domain.BookingStatus(statusStr)
		if !status.IsValid() {
			return Filter{}, fmt.Errorf("unknown status %q", statusStr)
		}
		f.Status = status
	}
	return f, nil
}

// Match дофильтровывает то, что не покрыл запрос к сервису
func (f Filter) Match(b *domain.Booking) bool {
	if f.ProviderID != "" && b.ProviderID != f.ProviderID {
		return false
	}
	if !f.Date.IsZero() && b.Date != f.Date {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}
