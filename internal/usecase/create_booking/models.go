package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Settings ограничения бронирования из конфигурации
type Settings struct {
	MaxSlotsPerBooking int            // Максимум слотов в одном бронировании (0 - без ограничений)
	AdvanceBookingDays int            // На сколько дней вперёд можно бронировать (0 - без ограничений)
	Location           *time.Location // Часовой пояс площадки
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64                 // ID пользователя
	CourtID   uuid.UUID             // ID корта
	Date      types.Date            // Дата бронирования
	Intervals []domain.SlotInterval // Выбранные слоты в любом порядке
	Notes     *string               // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
