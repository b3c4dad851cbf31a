package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByCourtWithFilter(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// CourtProvider интерфейс получения корта для проверки прав менеджера
type CourtProvider interface {
	GetCourt(ctx context.Context, courtID uuid.UUID) (*domain.Court, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
