package schedule

import (
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Template канонический набор времен дня
type Template struct {
	times []types.TimeString
}

// NewTemplate строит шаблон от dayStart до dayEnd включительно с шагом stepMinutes
func NewTemplate(dayStart, dayEnd string, stepMinutes int) (Template, error) {
	if stepMinutes <= 0 {
		return Template{}, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidInput, stepMinutes)
	}

	start, err := types.TimeString(dayStart).Minutes()
	if err != nil {
		return Template{}, fmt.Errorf("%w: day start: %v", ErrInvalidInput, err)
	}
	end, err := types.TimeString(dayEnd).Minutes()
	if err != nil {
		return Template{}, fmt.Errorf("%w: day end: %v", ErrInvalidInput, err)
	}
	if start > end {
		return Template{}, fmt.Errorf("%w: day start %s is after day end %s", ErrInvalidInput, dayStart, dayEnd)
	}

	times := make([]types.TimeString, 0, (end-start)/stepMinutes+1)
	for m := start; m <= end; m += stepMinutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return Template{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		times = append(times, ts)
	}

	return Template{times: times}, nil
}

// DefaultTemplate почасовые слоты 09:00..23:00
func DefaultTemplate() Template {
	t, _ := NewTemplate(domain.DefaultDayStart, domain.DefaultDayEnd, domain.DefaultSlotStepMinutes)
	return t
}

// Times возвращает копию списка времен
func (t Template) Times() []types.TimeString {
	out := make([]types.TimeString, len(t.times))
	copy(out, t.times)
	return out
}

// Slots день по умолчанию: все слоты закрыты и свободны
func (t Template) Slots() domain.DaySlots {
	slots := make(domain.DaySlots, len(t.times))
	for i, ts := range t.times {
		slots[i] = domain.TimeSlot{Time: ts}
	}
	return slots
}
