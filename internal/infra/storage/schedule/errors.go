package schedule

import "errors"

var (
	// ErrRead возвращается при ошибке чтения расписания из хранилища
	ErrRead = errors.New("schedule.repository: failed to read schedule")

	// ErrWrite возвращается при ошибке записи расписания в хранилище
	ErrWrite = errors.New("schedule.repository: failed to write schedule")

	// ErrDecode возвращается, если сохраненное расписание не является валидным JSON
	ErrDecode = errors.New("schedule.repository: failed to decode schedule")
)
