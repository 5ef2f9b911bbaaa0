package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default schedule template: hourly slots 09:00..23:00 inclusive
const (
	DefaultDayStart        = "09:00"
	DefaultDayEnd          = "23:00"
	DefaultSlotStepMinutes = 60
	DefaultSessionMinutes  = 60
)

// Business validation constants
const (
	MaxNameLength       = 200
	MaxNotesLength      = 1000
	MaxProviderIDLength = 64
)

// Storage keys of the key-value layout
const (
	ScheduleKeyPrefix = "schedule:"

	OnlineLedgerKey   = "bookings:online"
	ProviderLedgerKey = "bookings:provider"
	ManagerLedgerKey  = "bookings:manager"
)

// ScheduleKey returns the storage key of a provider's schedule
func ScheduleKey(providerID string) string {
	return ScheduleKeyPrefix + providerID
}
