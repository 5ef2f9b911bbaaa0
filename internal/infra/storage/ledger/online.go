package ledger

import (
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// Статусы онлайн-журнала; pending и paid означают запланированную сессию
// в соответствующем состоянии оплаты
const (
	onlinePending    = "pending"
	onlinePaid       = "paid"
	onlineScheduled  = "scheduled"
	onlineInProgress = "in_progress"
	onlineCompleted  = "completed"
	onlineCancelled  = "cancelled"
)

// OnlineRecord запись журнала бронирований с сайта (bookings:online)
type OnlineRecord struct {
	ID             string  `json:"id"`
	ClientName     string  `json:"clientName"`
	ClientEmail    string  `json:"clientEmail,omitempty"`
	ClientPhone    string  `json:"clientPhone,omitempty"`
	SpecialistID   string  `json:"specialistId"`
	SpecialistName string  `json:"specialistName"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Format         string  `json:"format,omitempty"`
	Duration       int     `json:"duration,omitempty"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	PaymentStatus  string  `json:"paymentStatus,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	Comment        string  `json:"comment,omitempty"`
}

type onlineCodec struct{}

func (onlineCodec) RecordID(r OnlineRecord) string {
	return r.ID
}

func (onlineCodec) ToBooking(r OnlineRecord) (*domain.Booking, error) {
	source := domain.SourceOnline

	date, slotTime, err := validateCommon(source, r.ID, r.SpecialistID, r.Date, r.Time, r.Amount)
	if err != nil {
		return nil, err
	}

	payment, err := parsePaymentStatus(source, r.ID, r.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var status domain.BookingStatus
	switch r.Status {
	case onlinePending:
		status, payment = domain.StatusScheduled, domain.PaymentPending
	case onlinePaid:
		status, payment = domain.StatusScheduled, domain.PaymentPaid
	case onlineScheduled:
		status = domain.StatusScheduled
	case onlineInProgress:
		status = domain.StatusInProgress
	case onlineCompleted:
		status = domain.StatusCompleted
	case onlineCancelled:
		status = domain.StatusCancelled
	default:
		return nil, fmt.Errorf("%w: source=%s, id=%s: unknown status %q", ErrInvalidRecord, source, r.ID, r.Status)
	}

	createdAt, err := parseRFC3339(source, r.ID, r.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		ID:              r.ID,
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		ClientPhone:     r.ClientPhone,
		ProviderID:      r.SpecialistID,
		ProviderName:    r.SpecialistName,
		Date:            date,
		Time:            slotTime,
		SessionType:     r.Format,
		DurationMinutes: durationOrDefault(r.Duration),
		Price:           r.Amount,
		Status:          status,
		PaymentStatus:   payment,
		Notes:           r.Comment,
		CreatedAt:       createdAt,
		Source:          source,
	}, nil
}

func (onlineCodec) FromBooking(b *domain.Booking) OnlineRecord {
	status := string(b.Status)
	payment := string(b.PaymentStatus)

	if b.Status == domain.StatusScheduled {
		switch b.PaymentStatus {
		case domain.PaymentPending:
			status, payment = onlinePending, ""
		case domain.PaymentPaid:
			status, payment = onlinePaid, ""
		}
	}

	return OnlineRecord{
		ID:             b.ID,
		ClientName:     b.ClientName,
		ClientEmail:    b.ClientEmail,
		ClientPhone:    b.ClientPhone,
		SpecialistID:   b.ProviderID,
		SpecialistName: b.ProviderName,
		Date:           b.Date.String(),
		Time:           b.Time.String(),
		Format:         b.SessionType,
		Duration:       b.DurationMinutes,
		Amount:         b.Price,
		Status:         status,
		PaymentStatus:  payment,
		CreatedAt:      formatRFC3339(b.CreatedAt),
		Comment:        b.Notes,
	}
}

// NewOnlineLedger журнал онлайн-бронирований
func NewOnlineLedger(store Store) *Ledger[OnlineRecord] {
	return newLedger[OnlineRecord](store, domain.OnlineLedgerKey, domain.SourceOnline, onlineCodec{})
}
