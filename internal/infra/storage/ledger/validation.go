package ledger

import (
	"fmt"
	"time"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// validateCommon проверяет поля, общие для всех журналов
func validateCommon(source domain.Source, id, providerID, date, slotTime string, price float64) (types.DateString, types.TimeString, error) {
	if id == "" {
		return "", "", fmt.Errorf("%w: source=%s: empty id", ErrInvalidRecord, source)
	}
	if providerID == "" {
		return "", "", fmt.Errorf("%w: source=%s, id=%s: empty provider id", ErrInvalidRecord, source, id)
	}

	d, err := types.NewDateStringFromString(date)
	if err != nil {
		return "", "", fmt.Errorf("%w: source=%s, id=%s: %v", ErrInvalidRecord, source, id, err)
	}

	t, err := types.NewTimeStringFromString(slotTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: source=%s, id=%s: %v", ErrInvalidRecord, source, id, err)
	}

	if price < 0 {
		return "", "", fmt.Errorf("%w: source=%s, id=%s: negative price", ErrInvalidRecord, source, id)
	}

	return d, t, nil
}

func parsePaymentStatus(source domain.Source, id, value string) (domain.PaymentStatus, error) {
	status := domain.PaymentStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: source=%s, id=%s: unknown payment status %q", ErrInvalidRecord, source, id, value)
	}
	return status, nil
}

func parseRFC3339(source domain.Source, id, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: source=%s, id=%s: bad createdAt %q", ErrInvalidRecord, source, id, value)
	}
	return t, nil
}

func formatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func durationOrDefault(minutes int) int {
	if minutes <= 0 {
		return domain.DefaultSessionMinutes
	}
	return minutes
}
