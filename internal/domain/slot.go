package domain

import (
	"sort"

	"github.com/m04kA/PsyBookingService/pkg/types"
)

// TimeSlot is a single bookable period in a provider's day.
// Booked implies Available.
type TimeSlot struct {
	Time      types.TimeString `json:"time"`
	Available bool             `json:"available"`
	Booked    bool             `json:"booked"`
}

// IsOpen returns true if the slot can be booked right now
func (s TimeSlot) IsOpen() bool {
	return s.Available && !s.Booked
}

// DaySlots is the ordered slot sequence of one date
type DaySlots []TimeSlot

// Find returns the index of the slot with the given time or -1
func (d DaySlots) Find(t types.TimeString) int {
	for i := range d {
		if d[i].Time == t {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy
func (d DaySlots) Clone() DaySlots {
	out := make(DaySlots, len(d))
	copy(out, d)
	return out
}

// SortByTime sorts slots ascending by time string
func (d DaySlots) SortByTime() {
	sort.SliceStable(d, func(i, j int) bool { return d[i].Time < d[j].Time })
}

// ProviderSchedule maps a date to its slot sequence. Dates are created lazily on first write.
type ProviderSchedule map[types.DateString]DaySlots

// SlotKey identifies a slot across providers; it is the unit of atomicity for booking
type SlotKey struct {
	ProviderID string
	Date       types.DateString
	Time       types.TimeString
}

func (k SlotKey) String() string {
	return k.ProviderID + "|" + k.Date.String() + "|" + k.Time.String()
}
