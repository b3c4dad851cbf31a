package quote_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/pricing"
	"github.com/m04kA/SMC-CourtBooking/internal/service/courts"
)

// UseCase use case для расчёта стоимости бронирования без сохранения
type UseCase struct {
	courtProvider      CourtProvider
	metrics            MetricsRecorder
	maxSlotsPerBooking int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(courtProvider CourtProvider, metrics MetricsRecorder, maxSlotsPerBooking int, logger Logger) *UseCase {
	return &UseCase{
		courtProvider:      courtProvider,
		metrics:            metrics,
		maxSlotsPerBooking: maxSlotsPerBooking,
		logger:             logger,
	}
}

// Execute считает цены выбранных слотов и итоговую сумму
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteBooking: court=%s, date=%s, slots=%d", req.CourtID, req.Date, len(req.Intervals))

	// 1. Валидация входных данных
	if req.CourtID == uuid.Nil {
		return nil, fmt.Errorf("%w: courtID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if uc.maxSlotsPerBooking > 0 && len(req.Intervals) > uc.maxSlotsPerBooking {
		return nil, fmt.Errorf("%w: at most %d slots per booking", ErrTooManySlots, uc.maxSlotsPerBooking)
	}

	// 2. Получаем корт вместе с ценовыми правилами
	court, err := uc.courtProvider.GetSnapshot(ctx, req.CourtID)
	if err != nil {
		if courts.IsNotFound(err) {
			uc.logger.Warn("QuoteBooking: court id=%s not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("QuoteBooking: failed to get court id=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 3. Считаем цены и сумму
	booking, err := pricing.BuildBooking(court, req.Date, req.Intervals)
	if err != nil {
		uc.logger.Warn("QuoteBooking: invalid selection: %v", err)
		switch {
		case errors.Is(err, pricing.ErrEmptySelection):
			return nil, ErrEmptySelection
		case errors.Is(err, pricing.ErrInvalidInterval):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		case errors.Is(err, pricing.ErrOverlap):
			return nil, fmt.Errorf("%w: %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Для каждого слота указываем, какое правило дало цену
	slots := make([]QuotedSlot, 0, len(booking.Slots))
	for _, s := range booking.Slots {
		resolution := pricing.Resolve(court, req.Date, s.Interval)
		slots = append(slots, QuotedSlot{
			Interval: s.Interval,
			Price:    s.Price,
			Source:   resolution.Source,
			RuleID:   resolution.RuleID,
		})
	}

	uc.metrics.RecordBooking("quoted", int64(booking.TotalAmount))
	uc.logger.Info("QuoteBooking: court=%s, date=%s, total=%s", req.CourtID, req.Date, booking.TotalAmount)

	return &Response{
		CourtID:         court.ID,
		Date:            req.Date,
		Slots:           slots,
		TotalAmount:     booking.TotalAmount,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		DurationMinutes: booking.DurationMinutes(),
	}, nil
}
