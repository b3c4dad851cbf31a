package get_slot_prices

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/pricing"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Причины недоступности слота
const (
	ReasonBooked = "booked"
	ReasonClosed = "closed"
)

// Settings параметры сетки слотов из конфигурации
type Settings struct {
	AdvanceBookingDays         int             // На сколько дней вперёд можно бронировать (0 - без ограничений)
	DefaultSlotDurationMinutes int             // Длина слота, если площадка её не указала
	DefaultOpenFrom            types.TimeOfDay // Часы работы, если площадка их не указала
	DefaultOpenTo              types.TimeOfDay
	Location                   *time.Location // Часовой пояс площадки
}

// Request модель запроса сетки слотов
type Request struct {
	CourtID uuid.UUID  // ID корта
	Date    types.Date // Дата
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	CourtID             uuid.UUID
	Date                types.Date
	SlotDurationMinutes int
	Slots               []Slot
}

// Slot слот сетки с ценой и доступностью
type Slot struct {
	Interval  domain.SlotInterval
	Price     types.Money
	Source    pricing.Source
	Available bool
	Reason    string // Причина недоступности (пусто, если слот свободен)
}
