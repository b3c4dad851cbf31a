package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultMaxSlotsPerBooking  = 24
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 15
	MaxSlotDurationMinutes      = 240
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxRuleDates                = 366
)

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при проверке занятости слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByCompany,
	StatusNoShow,
}
