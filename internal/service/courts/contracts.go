package courts

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// VenueClient интерфейс клиента сервиса площадок
type VenueClient interface {
	GetCourt(ctx context.Context, courtID uuid.UUID) (*domain.Court, error)
}

// RuleRepository интерфейс репозитория ценовых правил
type RuleRepository interface {
	ListByCourt(ctx context.Context, courtID uuid.UUID) ([]domain.PriceRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
