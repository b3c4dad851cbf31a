package quote_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// CourtProvider интерфейс получения снимка корта с ценовыми правилами
type CourtProvider interface {
	GetSnapshot(ctx context.Context, courtID uuid.UUID) (*domain.Court, error)
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
