package get_slot_prices

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/courts"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// UseCase use case для получения сетки слотов дня с ценами и доступностью
type UseCase struct {
	bookingRepo   BookingRepository
	courtProvider CourtProvider
	settings      Settings
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courtProvider CourtProvider,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.DefaultSlotDurationMinutes <= 0 {
		settings.DefaultSlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		courtProvider: courtProvider,
		settings:      settings,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotPrices: court=%s, date=%s", req.CourtID, req.Date)

	// 1. Валидация входных данных
	if req.CourtID == uuid.Nil {
		return nil, fmt.Errorf("%w: courtID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now().In(uc.settings.Location)
	today := types.DateOf(now)

	if req.Date.Before(today) {
		uc.logger.Warn("GetSlotPrices: date %s is in the past", req.Date)
		return nil, ErrInvalidDate
	}
	if uc.settings.AdvanceBookingDays > 0 && req.Date.After(today.AddDays(uc.settings.AdvanceBookingDays)) {
		uc.logger.Warn("GetSlotPrices: date %s is too far in the future", req.Date)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.settings.AdvanceBookingDays)
	}

	// 3. Получаем корт вместе с ценовыми правилами
	court, err := uc.courtProvider.GetSnapshot(ctx, req.CourtID)
	if err != nil {
		if courts.IsNotFound(err) {
			uc.logger.Warn("GetSlotPrices: court id=%s not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetSlotPrices: failed to get court id=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 4. Определяем часы работы и длину слота
	openFrom, openTo := uc.settings.DefaultOpenFrom, uc.settings.DefaultOpenTo
	switch {
	case court.HasOpeningHours():
		openFrom, openTo = *court.OpenFrom, *court.OpenTo
	case court.OpenFrom != nil || court.OpenTo != nil:
		uc.logger.Warn("GetSlotPrices: court=%s has incomplete opening hours, using default %s-%s",
			court.ID, openFrom, openTo)
	}

	slotDuration := court.SlotDurationMinutes
	if slotDuration < domain.MinSlotDurationMinutes || slotDuration > domain.MaxSlotDurationMinutes {
		slotDuration = uc.settings.DefaultSlotDurationMinutes
	}

	// 5. Генерируем слоты
	grid := generateGrid(openFrom, openTo, slotDuration, req.Date, now)

	// 6. Получаем активные бронирования корта на эту дату
	filter := domain.CourtBookingsFilter{
		CourtID:         req.CourtID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByCourtWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetSlotPrices: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Назначаем цены и доступность
	slots := priceGrid(court, req.Date, grid, bookings)

	uc.logger.Info("GetSlotPrices: generated %d slots for court=%s, date=%s", len(slots), req.CourtID, req.Date)

	return &Response{
		CourtID:             court.ID,
		Date:                req.Date,
		SlotDurationMinutes: slotDuration,
		Slots:               slots,
	}, nil
}
