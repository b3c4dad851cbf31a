package update_price_rule

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules/models"
)

type PriceRuleService interface {
	Update(ctx context.Context, id int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
