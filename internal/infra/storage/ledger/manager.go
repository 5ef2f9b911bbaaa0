package ledger

import (
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// Статусы журнала менеджера
const (
	managerUpcoming   = "upcoming"
	managerInProgress = "in_progress"
	managerCompleted  = "completed"
	managerCancelled  = "cancelled"
)

// ManagerClient контакт клиента в журнале менеджера
type ManagerClient struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ManagerRecord запись из панели менеджера (bookings:manager)
type ManagerRecord struct {
	ID              string        `json:"id"`
	Client          ManagerClient `json:"client"`
	ProviderID      string        `json:"providerId"`
	ProviderName    string        `json:"providerName"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	DurationMinutes int           `json:"durationMinutes"`
	Price           float64       `json:"price"`
	Status          string        `json:"status"`
	PaymentStatus   string        `json:"paymentStatus,omitempty"`
	SessionType     string        `json:"sessionType,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       string        `json:"createdAt"`
}

var (
	managerToStatus = map[string]domain.BookingStatus{
		managerUpcoming:   domain.StatusScheduled,
		managerInProgress: domain.StatusInProgress,
		managerCompleted:  domain.StatusCompleted,
		managerCancelled:  domain.StatusCancelled,
	}
	statusToManager = map[domain.BookingStatus]string{
		domain.StatusScheduled:  managerUpcoming,
		domain.StatusInProgress: managerInProgress,
		domain.StatusCompleted:  managerCompleted,
		domain.StatusCancelled:  managerCancelled,
	}
)

type managerCodec struct{}

func (managerCodec) RecordID(r ManagerRecord) string {
	return r.ID
}

func (managerCodec) ToBooking(r ManagerRecord) (*domain.Booking, error) {
	source := domain.SourceManager

	date, slotTime, err := validateCommon(source, r.ID, r.ProviderID, r.Date, r.Time, r.Price)
	if err != nil {
		return nil, err
	}

	status, ok := managerToStatus[r.Status]
	if !ok {
		return nil, fmt.Errorf("%w: source=%s, id=%s: unknown status %q", ErrInvalidRecord, source, r.ID, r.Status)
	}

	payment, err := parsePaymentStatus(source, r.ID, r.PaymentStatus)
	if err != nil {
		return nil, err
	}

	createdAt, err := parseRFC3339(source, r.ID, r.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		ID:              r.ID,
		ClientName:      r.Client.Name,
		ClientEmail:     r.Client.Email,
		ClientPhone:     r.Client.Phone,
		ProviderID:      r.ProviderID,
		ProviderName:    r.ProviderName,
		Date:            date,
		Time:            slotTime,
		SessionType:     r.SessionType,
		DurationMinutes: durationOrDefault(r.DurationMinutes),
		Price:           r.Price,
		Status:          status,
		PaymentStatus:   payment,
		Notes:           r.Notes,
		CreatedAt:       createdAt,
		Source:          source,
	}, nil
}

func (managerCodec) FromBooking(b *domain.Booking) ManagerRecord {
	return ManagerRecord{
		ID: b.ID,
		Client: ManagerClient{
			Name:  b.ClientName,
			Phone: b.ClientPhone,
			Email: b.ClientEmail,
		},
		ProviderID:      b.ProviderID,
		ProviderName:    b.ProviderName,
		Date:            b.Date.String(),
		Time:            b.Time.String(),
		DurationMinutes: b.DurationMinutes,
		Price:           b.Price,
		Status:          statusToManager[b.Status],
		PaymentStatus:   string(b.PaymentStatus),
		SessionType:     b.SessionType,
		Notes:           b.Notes,
		CreatedAt:       formatRFC3339(b.CreatedAt),
	}
}

// NewManagerLedger журнал записей, внесенных менеджерами
func NewManagerLedger(store Store) *Ledger[ManagerRecord] {
	return newLedger[ManagerRecord](store, domain.ManagerLedgerKey, domain.SourceManager, managerCodec{})
}
