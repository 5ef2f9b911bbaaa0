package clients

import (
	"strings"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// Normalize приводит телефон к виду 7XXXXXXXXXX:
// оставляет только цифры, ведущую 8 в 11-значном номере меняет на 7,
// к непустому номеру без ведущей 7 дописывает 7 спереди
func Normalize(phone string) string {
	var b strings.Builder
	b.Grow(len(phone) + 1)
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	if digits != "" && digits[0] != '7' {
		digits = "7" + digits
	}
	return digits
}

// SamePhone сравнивает номера после нормализации; пустой номер ни с чем не совпадает
func SamePhone(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}

// FindByPhone первая запись из наборов, чей телефон совпадает с phone
func FindByPhone(phone string, recordSets ...[]domain.ClientRecord) (domain.ClientRecord, bool) {
	target := Normalize(phone)
	if target == "" {
		return domain.ClientRecord{}, false
	}

	for _, set := range recordSets {
		for _, record := range set {
			if SamePhone(record.Phone, target) {
				return record, true
			}
		}
	}
	return domain.ClientRecord{}, false
}
