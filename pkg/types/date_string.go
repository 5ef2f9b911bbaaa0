package types

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateString возвращается, если строка не соответствует формату YYYY-MM-DD
var ErrInvalidDateString = errors.New("invalid date string format")

// DateString календарная дата в формате "YYYY-MM-DD", используется как ключ расписания
type DateString string

// NewDateString создает DateString из time.Time
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString парсит и валидирует строку вида "2025-09-01"
func NewDateStringFromString(s string) (DateString, error) {
	ds := DateString(s)
	if err := ds.Validate(); err != nil {
		return "", err
	}
	return ds, nil
}

func (d DateString) Validate() error {
	if len(d) != len(dateLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return nil
}

func (d DateString) String() string {
	return string(d)
}

func (d DateString) IsZero() bool {
	return d == ""
}

// At возвращает момент начала слота t в дату d в указанной локации
func (d DateString) At(t TimeString, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	parsed, err := time.ParseInLocation(dateLayout+" "+timeLayout, string(d)+" "+string(t), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %s", ErrInvalidDateString, d, t)
	}
	return parsed, nil
}
