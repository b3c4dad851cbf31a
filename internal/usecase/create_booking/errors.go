package create_booking

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrEmptySelection возвращается, когда не выбран ни один слот
	ErrEmptySelection = errors.New("create_booking: no slots selected")

	// ErrInvalidInterval возвращается, когда начало слота не раньше его конца
	ErrInvalidInterval = errors.New("create_booking: invalid slot interval")

	// ErrOverlap возвращается, когда выбранные слоты пересекаются
	ErrOverlap = errors.New("create_booking: selected slots overlap")

	// ErrTooManySlots возвращается, когда выбрано больше слотов, чем разрешено
	ErrTooManySlots = errors.New("create_booking: too many slots selected")

	// ErrInvalidDate возвращается при некорректной дате бронирования (например, в прошлом)
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideOpeningHours возвращается, когда слот выходит за часы работы корта
	ErrOutsideOpeningHours = errors.New("create_booking: slot is outside opening hours")

	// ErrSlotInPast возвращается, когда слот сегодняшнего дня уже начался
	ErrSlotInPast = errors.New("create_booking: slot has already started")

	// ErrSlotUnavailable возвращается, когда корт закрыт площадкой в это время
	ErrSlotUnavailable = errors.New("create_booking: court is unavailable at this time")

	// ErrSlotTaken возвращается, когда слот пересекается с активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
