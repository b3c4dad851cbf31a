package pricerules

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// RuleRepository интерфейс репозитория ценовых правил
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error)
	GetByID(ctx context.Context, id int64) (*domain.PriceRule, error)
	ListByCourt(ctx context.Context, courtID uuid.UUID) ([]domain.PriceRule, error)
	Update(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error)
	Delete(ctx context.Context, id int64) error
}

// CourtProvider интерфейс получения корта для проверки прав менеджера
type CourtProvider interface {
	GetCourt(ctx context.Context, courtID uuid.UUID) (*domain.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
