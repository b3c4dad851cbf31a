package list_price_rules

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules/models"
)

type PriceRuleService interface {
	ListByCourt(ctx context.Context, courtID uuid.UUID) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
