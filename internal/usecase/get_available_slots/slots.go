package get_available_slots

import (
	"time"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// upcomingTimes оставляет слоты, которые еще не начались.
// Для будущих дат возвращает все слоты.
func upcomingTimes(slots domain.DaySlots, date types.DateString, now time.Time) []types.TimeString {
	times := make([]types.TimeString, 0, len(slots))
	today := types.NewDateString(now)

	for _, slot := range slots {
		if date == today && !slot.Time.IsAfter(types.NewTimeString(now)) {
			continue
		}
		times = append(times, slot.Time)
	}
	return times
}

// isSlotStarted true, если слот на дату уже начался
func isSlotStarted(date types.DateString, slotTime types.TimeString, now time.Time) bool {
	today := types.NewDateString(now)
	if date != today {
		return date.String() < today.String()
	}
	return !slotTime.IsAfter(types.NewTimeString(now))
}
