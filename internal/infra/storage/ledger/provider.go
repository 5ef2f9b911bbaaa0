package ledger

import (
	"fmt"
	"time"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// Состояния журнала специалиста
const (
	providerPlanned   = "planned"
	providerInSession = "in_session"
	providerDone      = "done"
	providerCancelled = "cancelled"
)

// ProviderRecord запись из кабинета специалиста (bookings:provider)
type ProviderRecord struct {
	ID               string  `json:"id"`
	PsychologistID   string  `json:"psychologistId"`
	PsychologistName string  `json:"psychologistName,omitempty"`
	ClientName       string  `json:"clientName"`
	ClientPhone      string  `json:"clientPhone,omitempty"`
	ClientEmail      string  `json:"clientEmail,omitempty"`
	SessionDate      string  `json:"sessionDate"`
	SessionTime      string  `json:"sessionTime"`
	SessionType      string  `json:"sessionType,omitempty"`
	Duration         int     `json:"duration"`
	Cost             float64 `json:"cost"`
	State            string  `json:"state"`
	PaymentStatus    string  `json:"paymentStatus,omitempty"`
	CreatedAt        int64   `json:"createdAt"` // unix ms
	Comment          string  `json:"comment,omitempty"`
}

var (
	providerToStatus = map[string]domain.BookingStatus{
		providerPlanned:   domain.StatusScheduled,
		providerInSession: domain.StatusInProgress,
		providerDone:      domain.StatusCompleted,
		providerCancelled: domain.StatusCancelled,
	}
	statusToProvider = map[domain.BookingStatus]string{
		domain.StatusScheduled:  providerPlanned,
		domain.StatusInProgress: providerInSession,
		domain.StatusCompleted:  providerDone,
		domain.StatusCancelled:  providerCancelled,
	}
)

type providerCodec struct{}

func (providerCodec) RecordID(r ProviderRecord) string {
	return r.ID
}

func (providerCodec) ToBooking(r ProviderRecord) (*domain.Booking, error) {
	source := domain.SourceProvider

	date, slotTime, err := validateCommon(source, r.ID, r.PsychologistID, r.SessionDate, r.SessionTime, r.Cost)
	if err != nil {
		return nil, err
	}

	status, ok := providerToStatus[r.State]
	if !ok {
		return nil, fmt.Errorf("%w: source=%s, id=%s: unknown state %q", ErrInvalidRecord, source, r.ID, r.State)
	}

	payment, err := parsePaymentStatus(source, r.ID, r.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var createdAt time.Time
	if r.CreatedAt > 0 {
		createdAt = time.UnixMilli(r.CreatedAt).UTC()
	}

	return &domain.Booking{
		ID:              r.ID,
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		ClientPhone:     r.ClientPhone,
		ProviderID:      r.PsychologistID,
		ProviderName:    r.PsychologistName,
		Date:            date,
		Time:            slotTime,
		SessionType:     r.SessionType,
		DurationMinutes: durationOrDefault(r.Duration),
		Price:           r.Cost,
		Status:          status,
		PaymentStatus:   payment,
		Notes:           r.Comment,
		CreatedAt:       createdAt,
		Source:          source,
	}, nil
}

func (providerCodec) FromBooking(b *domain.Booking) ProviderRecord {
	var createdAt int64
	if !b.CreatedAt.IsZero() {
		createdAt = b.CreatedAt.UnixMilli()
	}

	return ProviderRecord{
		ID:               b.ID,
		PsychologistID:   b.ProviderID,
		PsychologistName: b.ProviderName,
		ClientName:       b.ClientName,
		ClientPhone:      b.ClientPhone,
		ClientEmail:      b.ClientEmail,
		SessionDate:      b.Date.String(),
		SessionTime:      b.Time.String(),
		SessionType:      b.SessionType,
		Duration:         b.DurationMinutes,
		Cost:             b.Price,
		State:            statusToProvider[b.Status],
		PaymentStatus:    string(b.PaymentStatus),
		CreatedAt:        createdAt,
		Comment:          b.Notes,
	}
}

// NewProviderLedger журнал записей, внесенных специалистами
func NewProviderLedger(store Store) *Ledger[ProviderRecord] {
	return newLedger[ProviderRecord](store, domain.ProviderLedgerKey, domain.SourceProvider, providerCodec{})
}
