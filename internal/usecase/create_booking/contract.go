package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByCourtWithFilter(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error)
}

// CourtProvider интерфейс получения снимка корта с ценовыми правилами
type CourtProvider interface {
	GetSnapshot(ctx context.Context, courtID uuid.UUID) (*domain.Court, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// MetricsRecorder интерфейс бизнес-метрик бронирований
type MetricsRecorder interface {
	RecordBooking(operation string, totalMinor int64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
