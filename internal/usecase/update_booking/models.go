package update_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Settings ограничения бронирования из конфигурации
type Settings struct {
	MaxSlotsPerBooking int            // Максимум слотов в одном бронировании (0 - без ограничений)
	AdvanceBookingDays int            // На сколько дней вперёд можно бронировать (0 - без ограничений)
	Location           *time.Location // Часовой пояс площадки
}

// Request модель запроса на изменение бронирования
type Request struct {
	BookingID int64                 // ID бронирования
	UserID    int64                 // ID пользователя, выполняющего изменение
	Date      *types.Date           // Новая дата (nil - оставить прежнюю)
	Intervals []domain.SlotInterval // Полный новый набор слотов
	Notes     *string               // Новые заметки (nil - оставить прежние)
}

// Response модель ответа с изменённым бронированием
type Response struct {
	Booking *domain.Booking
}
