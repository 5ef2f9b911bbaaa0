package get_provider_slots

import "github.com/m04kA/PsyBookingService/internal/domain"

// SlotResponse слот календаря
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Booked    bool   `json:"booked"`
}

// ProviderSlotsResponse HTTP response model
type ProviderSlotsResponse struct {
	ProviderID string         `json:"providerId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromDomainSlots конвертирует слоты дня
func FromDomainSlots(providerID, date string, slots domain.DaySlots) *ProviderSlotsResponse {
	resp := &ProviderSlotsResponse{
		ProviderID: providerID,
		Date:       date,
		Slots:      make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
			Booked:    s.Booked,
		})
	}
	return resp
}
