package domain

import (
	"time"

	"github.com/m04kA/PsyBookingService/pkg/types"
)

// BookingStatus is the canonical lifecycle status shared by all ledgers
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsValid reports whether the status is one of the canonical values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is tracked separately from the lifecycle status
type PaymentStatus string

const (
	PaymentUnknown PaymentStatus = ""
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentUnknown, PaymentPending, PaymentPaid, PaymentUnpaid:
		return true
	}
	return false
}

// Source identifies the ledger that owns a booking
type Source string

const (
	SourceOnline   Source = "online"
	SourceProvider Source = "provider"
	SourceManager  Source = "manager"
)

func (s Source) IsValid() bool {
	switch s {
	case SourceOnline, SourceProvider, SourceManager:
		return true
	}
	return false
}

// AllSources lists ledgers in a stable order
var AllSources = []Source{SourceOnline, SourceProvider, SourceManager}

// Booking is the unified view over the three ledgers
type Booking struct {
	ID              string
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
	Status          BookingStatus
	PaymentStatus   PaymentStatus
	Notes           string
	CreatedAt       time.Time
	Source          Source
}

// Slot returns the slot the booking holds
func (b *Booking) Slot() SlotKey {
	return SlotKey{ProviderID: b.ProviderID, Date: b.Date, Time: b.Time}
}

// IsActive returns true if the booking holds its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsAwaitingPayment returns true for an unconfirmed hold
func (b *Booking) IsAwaitingPayment() bool {
	return b.Status == StatusScheduled && b.PaymentStatus == PaymentPending
}

// BookingPatch is a partial update applied by a ledger
type BookingPatch struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	Notes         *string
}

// Apply mutates the booking with non-nil patch fields
func (p BookingPatch) Apply(b *Booking) {
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
}

// BookingStats aggregates bookings across all ledgers
type BookingStats struct {
	Total        int
	Scheduled    int
	InProgress   int
	Completed    int
	Cancelled    int
	TotalRevenue float64
}

// ClientRecord is the contact part of a booking used by client lookup flows
type ClientRecord struct {
	Name      string
	Phone     string
	Email     string
	BookingID string
	Source    Source
}
