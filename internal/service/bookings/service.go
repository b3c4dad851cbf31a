package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/events"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/internal/service/courts"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	courtProvider CourtProvider
	txManager     TransactionManager
	publisher     EventPublisher
	metrics       MetricsRecorder
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	courtProvider CourtProvider,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		courtProvider: courtProvider,
		txManager:     txManager,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером корта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCourtBookings получает бронирования корта с фильтрацией и сортировкой
// Доступно только менеджерам корта
//
// Примеры использования:
// - Все активные бронирования: GetCourtBookings(ctx, &GetCourtBookingsRequest{CourtID: id, UserID: 456})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только оплаченные: PaymentStatus = "paid"
// - Самые дорогие сначала: SortBy = "total_amount", SortDesc = true
func (s *Service) GetCourtBookings(ctx context.Context, req *models.GetCourtBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetCourtBookings: fetching bookings for court=%s, user=%d", req.CourtID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate, req.EndDate)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.SortBy != "" {
		logMsg += fmt.Sprintf(", sort=%s desc=%t", req.SortBy, req.SortDesc)
	}
	s.logger.Info("%s", logMsg)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCourtBookings: invalid filter for court=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.CourtID, req.UserID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByCourtWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCourtBookings: repository error for court=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: GetCourtBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCourtBookings: successfully fetched %d bookings for court=%s", len(bookings), req.CourtID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование (cancelled_by_user)
// Менеджер может отменить любое бронирование корта (cancelled_by_company)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus
	if booking.UserID == req.UserID {
		cancelStatus = domain.StatusCancelledByUser
	} else {
		if err := s.checkManagerAccess(ctx, booking.CourtID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return err
		}
		cancelStatus = domain.StatusCancelledByCompany
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = cancelStatus
	if req.CancellationReason != "" {
		booking.CancellationReason = &req.CancellationReason
	}
	s.publish(ctx, events.BookingCancelled, booking)
	s.metrics.RecordBooking("cancelled", int64(booking.TotalAmount))

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования и/или статус оплаты
// Доступно только менеджерам корта
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d by user=%d", bookingID, req.UserID)

	if req.Status == nil && req.PaymentStatus == nil {
		return fmt.Errorf("%w: status or payment_status is required", ErrInvalidInput)
	}

	// Валидируем и конвертируем статусы
	var newStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", *req.Status, bookingID)
			return fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		newStatus = &status
	}

	var newPaymentStatus *domain.PaymentStatus
	if req.PaymentStatus != nil {
		status, err := models.ToDomainPaymentStatus(*req.PaymentStatus)
		if err != nil {
			s.logger.Warn("UpdateStatus: invalid payment status=%s for booking id=%d", *req.PaymentStatus, bookingID)
			return fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
		}
		newPaymentStatus = &status
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	// Проверяем права доступа (только менеджер корта)
	if err := s.checkManagerAccess(ctx, booking.CourtID, req.UserID); err != nil {
		return err
	}

	// Возврат отмененного бронирования в работу требует повторной проверки слотов:
	// после отмены их мог занять другой клиент
	reactivate := newStatus != nil && booking.IsReactivatedBy(*newStatus)
	runInTx := s.txManager.Do
	if reactivate {
		runInTx = s.txManager.DoSerializable
	}

	// Оба статуса меняются вместе или не меняются вовсе
	err = runInTx(ctx, func(txCtx context.Context) error {
		if reactivate {
			if err := s.checkSlotsFree(txCtx, booking); err != nil {
				return err
			}
		}
		if newStatus != nil {
			if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, *newStatus); err != nil {
				return err
			}
			booking.Status = *newStatus
		}
		if newPaymentStatus != nil {
			if err := s.bookingRepo.UpdatePaymentStatus(txCtx, bookingID, *newPaymentStatus); err != nil {
				return err
			}
			booking.PaymentStatus = *newPaymentStatus
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			return err
		case errors.Is(err, txmanager.ErrSerializationFailure):
			s.logger.Warn("UpdateStatus: concurrent update of court=%s slots, booking id=%d", booking.CourtID, bookingID)
			return fmt.Errorf("%w: concurrent booking", ErrSlotTaken)
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, events.BookingStatusChanged, booking)

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s, payment=%s",
		bookingID, booking.Status, booking.PaymentStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkSlotsFree проверяет, что слоты бронирования не заняты другими активными бронированиями корта
func (s *Service) checkSlotsFree(ctx context.Context, booking *domain.Booking) error {
	filter := domain.CourtBookingsFilter{
		CourtID:          booking.CourtID,
		StartDate:        &booking.Date,
		EndDate:          &booking.Date,
		ExcludeBookingID: &booking.ID,
	}

	existing, err := s.bookingRepo.GetByCourtWithFilter(ctx, filter)
	if err != nil {
		return fmt.Errorf("get court bookings: %w", err)
	}

	if conflict, interval, taken := domain.FindConflict(existing, booking.Intervals()); taken {
		s.logger.Warn("UpdateStatus: slot %s of booking id=%d is taken by booking id=%d",
			interval, booking.ID, conflict.ID)
		return fmt.Errorf("%w: %s", ErrSlotTaken, interval)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, key string, booking *domain.Booking) {
	if err := s.publisher.PublishJSON(ctx, key, events.BookingPayload(booking)); err != nil {
		s.logger.Error("publish: failed to publish %s for booking id=%d: %v", key, booking.ID, err)
	}
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он менеджер корта
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, booking.CourtID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		if errors.Is(err, ErrInternal) || errors.Is(err, ErrCourtNotFound) {
			return err
		}
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером корта
func (s *Service) checkManagerAccess(ctx context.Context, courtID uuid.UUID, userID int64) error {
	court, err := s.courtProvider.GetCourt(ctx, courtID)
	if err != nil {
		if courts.IsNotFound(err) {
			s.logger.Warn("checkManagerAccess: court id=%s not found", courtID)
			return ErrCourtNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get court id=%s: %v", courtID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get court: %v", ErrInternal, err)
	}

	if !court.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of court=%s", userID, courtID)
		return ErrAccessDenied
	}

	s.logger.Info("checkManagerAccess: user=%d is manager of court=%s", userID, courtID)
	return nil
}
