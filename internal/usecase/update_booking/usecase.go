package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/events"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/internal/pricing"
	"github.com/m04kA/SMC-CourtBooking/internal/service/courts"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// UseCase use case для изменения даты и слотов бронирования
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

// Execute выполняет use case изменения бронирования
// Цены слотов, оставшихся на той же дате, не пересчитываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, user=%d, slots=%d", req.BookingID, req.UserID, len(req.Intervals))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.settings.MaxSlotsPerBooking); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	current, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// 3. Получаем корт вместе с ценовыми правилами
	court, err := uc.courtProvider.GetSnapshot(ctx, current.CourtID)
	if err != nil {
		if courts.IsNotFound(err) {
			uc.logger.Warn("UpdateBooking: court id=%s not found", current.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get court id=%s: %v", current.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 4. Проверяем права: владелец бронирования или менеджер корта
	if current.UserID != req.UserID && !court.IsManager(req.UserID) {
		uc.logger.Warn("UpdateBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !current.CanBeUpdated() {
		uc.logger.Warn("UpdateBooking: booking id=%d cannot be updated, status=%s", req.BookingID, current.Status)
		return nil, ErrCannotUpdate
	}

	// 5. Проверяем дату
	now := uc.timeProvider.Now().In(uc.settings.Location)
	date := current.Date
	if req.Date != nil {
		date = *req.Date
	}
	if err := validateDate(date, types.DateOf(now), uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("UpdateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 6. Пересчитываем бронирование, сохраняя цены слотов на той же дате
	var previous []domain.BookingSlot
	if date == current.Date {
		previous = current.Slots
	}

	rebuilt, err := pricing.RebuildBooking(court, date, req.Intervals, previous)
	if err != nil {
		uc.logger.Warn("UpdateBooking: invalid selection: %v", err)
		return nil, mapPricingError(err)
	}

	if err := validateNewSlots(court, rebuilt, previous, now); err != nil {
		uc.logger.Warn("UpdateBooking: slot validation failed: %v", err)
		return nil, err
	}

	rebuilt.ID = current.ID
	rebuilt.UserID = current.UserID
	rebuilt.Status = current.Status
	rebuilt.PaymentStatus = current.PaymentStatus
	rebuilt.Notes = current.Notes
	rebuilt.CreatedAt = current.CreatedAt
	if req.Notes != nil {
		rebuilt.Notes = req.Notes
	}

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Перечитываем бронирование с блокировкой, статус мог измениться
		locked, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if !locked.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking id=%d changed status to %s", req.BookingID, locked.Status)
			return ErrCannotUpdate
		}

		// 7.2. Проверяем пересечения с другими бронированиями корта
		filter := domain.CourtBookingsFilter{
			CourtID:          current.CourtID,
			StartDate:        &date,
			EndDate:          &date,
			ExcludeBookingID: &current.ID,
		}

		existing, err := uc.bookingRepo.GetByCourtWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if conflict, interval, taken := domain.FindConflict(existing, rebuilt.Intervals()); taken {
			uc.logger.Warn("UpdateBooking: slot %s is taken by booking id=%d", interval, conflict.ID)
			return fmt.Errorf("%w: %s", ErrSlotTaken, interval)
		}

		// 7.3. Сохраняем новые слоты
		if err := uc.bookingRepo.ReplaceSlots(txCtx, rebuilt); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to replace slots of booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to replace slots: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Конкурентная транзакция успела занять слоты, повтор тоже проиграл
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateBooking: serialization conflict on court=%s date=%s: %v", current.CourtID, date, err)
			return nil, fmt.Errorf("%w: concurrent booking of the same slots", ErrSlotTaken)
		}
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, total=%s", rebuilt.ID, rebuilt.TotalAmount)

	if err := uc.publisher.PublishJSON(ctx, events.BookingUpdated, events.BookingPayload(rebuilt)); err != nil {
		uc.logger.Error("UpdateBooking: failed to publish event for booking id=%d: %v", rebuilt.ID, err)
	}
	uc.metrics.RecordBooking("updated", int64(rebuilt.TotalAmount))

	return &Response{Booking: rebuilt}, nil
}

// getBooking получает бронирование и переводит ошибки репозитория
func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}
