package models

import (
	"sort"
	"time"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Request модели

// AddBookingRequest запрос на создание бронирования в журнале источника
type AddBookingRequest struct {
	Source          domain.Source
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	ProviderID      string
	ProviderName    string
	Date            types.DateString
	Time            types.TimeString
	SessionType     string
	DurationMinutes int
	Price           float64
	PaymentStatus   domain.PaymentStatus
	Notes           string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string  `json:"id"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail,omitempty"`
	ClientPhone     string  `json:"clientPhone,omitempty"`
	ProviderID      string  `json:"providerId"`
	ProviderName    string  `json:"providerName"`
	Date            string  `json:"date"` // "2025-09-01"
	Time            string  `json:"time"` // "10:00"
	SessionType     string  `json:"sessionType,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Source          string  `json:"source"`
	CreatedAt       string  `json:"createdAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// StatsResponse сводная статистика по всем журналам
type StatsResponse struct {
	Total        int     `json:"total"`
	Scheduled    int     `json:"scheduled"`
	InProgress   int     `json:"inProgress"`
	Completed    int     `json:"completed"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// Виды расхождений между календарем и журналами
const (
	IssuePhantomHold   = "phantom_hold"   // слот занят, записи нет
	IssueOrphanRecord  = "orphan_record"  // запись есть, слот не занят
	IssueDoubleBooking = "double_booking" // несколько активных записей на один слот
)

// ConsistencyIssue одно расхождение
type ConsistencyIssue struct {
	Kind       string   `json:"kind"`
	ProviderID string   `json:"providerId"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	BookingIDs []string `json:"bookingIds,omitempty"`
}

// ConsistencyReport результат сверки календаря с журналами
type ConsistencyReport struct {
	CheckedAt time.Time          `json:"checkedAt"`
	Bookings  int                `json:"bookings"`
	Providers int                `json:"providers"`
	Issues    []ConsistencyIssue `json:"issues"`
	Counts    map[string]int     `json:"counts"`
}

// IsConsistent true, если расхождений не найдено
func (r *ConsistencyReport) IsConsistent() bool {
	return len(r.Issues) == 0
}

// Add регистрирует расхождение по слоту
func (r *ConsistencyReport) Add(kind string, key domain.SlotKey, bookingIDs []string) {
	var ids []string
	if len(bookingIDs) > 0 {
		ids = append([]string(nil), bookingIDs...)
		sort.Strings(ids)
	}

	r.Issues = append(r.Issues, ConsistencyIssue{
		Kind:       kind,
		ProviderID: key.ProviderID,
		Date:       key.Date.String(),
		Time:       key.Time.String(),
		BookingIDs: ids,
	})
	if r.Counts == nil {
		r.Counts = make(map[string]int)
	}
	r.Counts[kind]++
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	createdAt := ""
	if !b.CreatedAt.IsZero() {
		createdAt = b.CreatedAt.Format(time.RFC3339)
	}

	return &BookingResponse{
		ID:              b.ID,
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		ProviderID:      b.ProviderID,
		ProviderName:    b.ProviderName,
		Date:            b.Date.String(),
		Time:            b.Time.String(),
		SessionType:     b.SessionType,
		DurationMinutes: b.DurationMinutes,
		Price:           b.Price,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		Notes:           b.Notes,
		Source:          string(b.Source),
		CreatedAt:       createdAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// FromDomainStats конвертирует статистику
func FromDomainStats(s domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		Total:        s.Total,
		Scheduled:    s.Scheduled,
		InProgress:   s.InProgress,
		Completed:    s.Completed,
		Cancelled:    s.Cancelled,
		TotalRevenue: s.TotalRevenue,
	}
}
