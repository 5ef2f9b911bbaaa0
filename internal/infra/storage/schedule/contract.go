package schedule

import "github.com/m04kA/PsyBookingService/internal/infra/storage/kv"

// Store хранилище, в котором лежат расписания специалистов
type Store = kv.Store
