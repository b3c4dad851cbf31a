package get_slot_prices

import (
	"context"

	getSlotPrices "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_slot_prices"
)

type GetSlotPricesUseCase interface {
	Execute(ctx context.Context, req *getSlotPrices.Request) (*getSlotPrices.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
