package ledger

import (
	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/infra/storage/kv"
)

// Store хранилище, в котором лежат журналы бронирований
type Store = kv.Store

// Codec переводит сырые записи конкретного журнала в единое представление и обратно.
// Вся трансляция статусов живет в кодеках.
type Codec[R any] interface {
	RecordID(record R) string
	ToBooking(record R) (*domain.Booking, error)
	FromBooking(booking *domain.Booking) R
}
