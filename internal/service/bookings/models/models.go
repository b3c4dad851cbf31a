package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrInvalidSort возвращается при некорректном поле сортировки
	ErrInvalidSort = errors.New("invalid sort field")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"-"`
	CancellationReason string `json:"cancellation_reason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования и/или оплаты
type UpdateStatusRequest struct {
	UserID        int64   `json:"-"`
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	RequesterID int64   // Кто запрашивает (X-User-ID)
	UserID      int64   // Чьи бронирования
	Status      *string // Фильтр по статусу (опционально)
}

// GetCourtBookingsRequest запрос на получение бронирований корта (админ-панель)
type GetCourtBookingsRequest struct {
	UserID          int64
	CourtID         uuid.UUID
	StartDate       *types.Date // Начало периода (опционально)
	EndDate         *types.Date // Конец периода (опционально)
	Status          *string     // Фильтр по статусу (опционально)
	PaymentStatus   *string     // Фильтр по статусу оплаты (опционально)
	IncludeInactive bool        // Включить отменённые бронирования
	SortBy          string      // booking_date | total_amount | created_at
	SortDesc        bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCourtBookingsRequest) ToDomainFilter() (domain.CourtBookingsFilter, error) {
	filter := domain.CourtBookingsFilter{
		CourtID:         r.CourtID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
		SortBy:          domain.BookingSortField(r.SortBy),
		SortDesc:        r.SortDesc,
	}

	if !filter.SortBy.IsValid() {
		return filter, ErrInvalidSort
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.PaymentStatus != nil {
		paymentStatus, err := ToDomainPaymentStatus(*r.PaymentStatus)
		if err != nil {
			return filter, err
		}
		filter.PaymentStatus = &paymentStatus
	}

	return filter, nil
}

// Response модели

// TimeSlotResponse слот бронирования с зафиксированной ценой
type TimeSlotResponse struct {
	Start types.TimeOfDay `json:"start"`
	End   types.TimeOfDay `json:"end"`
	Price types.Money     `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"user_id"`
	CourtID         string             `json:"court_id"`
	BookingDate     types.Date         `json:"booking_date"` // "2024-06-03"
	StartTime       types.TimeOfDay    `json:"start_time"`   // "18:00"
	EndTime         types.TimeOfDay    `json:"end_time"`
	DurationMinutes int                `json:"duration_minutes"`
	TimeSlots       []TimeSlotResponse `json:"time_slots"`
	TotalAmount     types.Money        `json:"total_amount"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"payment_status"`
	Notes           *string            `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	slots := make([]TimeSlotResponse, len(b.Slots))
	for i, s := range b.Slots {
		slots[i] = TimeSlotResponse{Start: s.Interval.From, End: s.Interval.To, Price: s.Price}
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		CourtID:            b.CourtID.String(),
		BookingDate:        b.Date,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationMinutes:    b.DurationMinutes(),
		TimeSlots:          slots,
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Total = len(resp.Bookings)

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return s, nil
}
