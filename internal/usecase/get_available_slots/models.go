package get_available_slots

import (
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date types.DateString // Дата
	Time types.TimeString // Если указано, дополнительно возвращаются специалисты на это время
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date      types.DateString
	Slots     []types.TimeString // Свободное время по всем специалистам, по возрастанию
	Providers []ProviderSlot     // Специалисты на запрошенное время
}

// ProviderSlot специалист, у которого свободно запрошенное время
type ProviderSlot struct {
	ID    string
	Name  string
	Price float64
}
