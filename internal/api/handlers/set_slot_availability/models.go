package set_slot_availability

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Available *bool `json:"available"`
}

// SetAvailabilityResponse HTTP response model
type SetAvailabilityResponse struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Available  bool   `json:"available"`
}
