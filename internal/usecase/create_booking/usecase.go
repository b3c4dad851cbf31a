package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/events"
	"github.com/m04kA/SMC-CourtBooking/internal/pricing"
	"github.com/m04kA/SMC-CourtBooking/internal/service/courts"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	courtProvider CourtProvider
	txManager     TransactionManager
	publisher     EventPublisher
	metrics       MetricsRecorder
	settings      Settings
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courtProvider CourtProvider,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		courtProvider: courtProvider,
		txManager:     txManager,
		publisher:     publisher,
		metrics:       metrics,
		settings:      settings,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, court=%s, date=%s, slots=%d",
		req.UserID, req.CourtID, req.Date, len(req.Intervals))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.settings.MaxSlotsPerBooking); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе площадки
	now := uc.timeProvider.Now().In(uc.settings.Location)

	// 3. Проверяем дату
	if err := validateDate(req.Date, types.DateOf(now), uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем корт вместе с ценовыми правилами
	court, err := uc.courtProvider.GetSnapshot(ctx, req.CourtID)
	if err != nil {
		if courts.IsNotFound(err) {
			uc.logger.Warn("CreateBooking: court id=%s not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 5. Считаем цены слотов и итоговую сумму
	booking, err := pricing.BuildBooking(court, req.Date, req.Intervals)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid selection: %v", err)
		return nil, mapPricingError(err)
	}

	// 6. Проверяем часы работы и закрытия площадки
	if err := validateSlots(court, booking, now); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	booking.UserID = req.UserID
	booking.Status = domain.StatusConfirmed
	booking.PaymentStatus = domain.PaymentPending
	booking.Notes = req.Notes

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем все активные бронирования корта на эту дату с блокировкой (FOR UPDATE)
		filter := domain.CourtBookingsFilter{
			CourtID:         req.CourtID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		existing, err := uc.bookingRepo.GetByCourtWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 7.2. Проверяем, что слоты свободны
		if conflict, interval, taken := domain.FindConflict(existing, booking.Intervals()); taken {
			uc.logger.Warn("CreateBooking: slot %s is taken by booking id=%d", interval, conflict.ID)
			return fmt.Errorf("%w: %s", ErrSlotTaken, interval)
		}

		// 7.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентная транзакция успела занять слоты, повтор тоже проиграл
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization conflict on court=%s date=%s: %v", req.CourtID, req.Date, err)
			return nil, fmt.Errorf("%w: concurrent booking of the same slots", ErrSlotTaken)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s", result.ID, result.TotalAmount)

	// 8. Публикуем событие, ошибка брокера не отменяет бронирование
	if err := uc.publisher.PublishJSON(ctx, events.BookingCreated, events.BookingPayload(result)); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}
	uc.metrics.RecordBooking("created", int64(result.TotalAmount))

	return &Response{Booking: result}, nil
}
