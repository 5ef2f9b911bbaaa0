package client_lookup

import "github.com/m04kA/PsyBookingService/internal/domain"

// LookupRequest HTTP request model
type LookupRequest struct {
	Phone string `json:"phone"`
}

// ClientResponse HTTP response model
type ClientResponse struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
	Source string `json:"source"`
}

// FromDomain конвертирует найденную запись клиента
func FromDomain(c *domain.ClientRecord) *ClientResponse {
	return &ClientResponse{
		Name:   c.Name,
		Phone:  c.Phone,
		Email:  c.Email,
		Source: string(c.Source),
	}
}
