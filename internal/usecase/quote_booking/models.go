package quote_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/pricing"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса расчёта стоимости
type Request struct {
	CourtID   uuid.UUID             // ID корта
	Date      types.Date            // Дата бронирования
	Intervals []domain.SlotInterval // Выбранные слоты в любом порядке
}

// QuotedSlot слот с ценой и источником цены
type QuotedSlot struct {
	Interval domain.SlotInterval
	Price    types.Money
	Source   pricing.Source
	RuleID   int64
}

// Response модель ответа с расчётом стоимости
type Response struct {
	CourtID         uuid.UUID
	Date            types.Date
	Slots           []QuotedSlot // Отсортированы по времени начала
	TotalAmount     types.Money
	StartTime       types.TimeOfDay
	EndTime         types.TimeOfDay
	DurationMinutes int
}
