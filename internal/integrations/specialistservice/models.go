package specialistservice

import "github.com/m04kA/PsyBookingService/internal/domain"

// Specialist модель специалиста из SpecialistService
type Specialist struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	IsActive bool    `json:"is_active"`
	Price    float64 `json:"session_price"`
}

// SpecialistList ответ со списком специалистов
type SpecialistList struct {
	Specialists []Specialist `json:"specialists"`
}

// ErrorResponse модель ошибки от SpecialistService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует специалиста в domain.Provider
func (s Specialist) ToDomain() domain.Provider {
	return domain.Provider{
		ID:     s.ID,
		Name:   s.FullName,
		Active: s.IsActive,
		Price:  s.Price,
	}
}
