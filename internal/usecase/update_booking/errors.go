package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrCourtNotFound возвращается, когда корт бронирования не найден
	ErrCourtNotFound = errors.New("update_booking: court not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец и не менеджер корта
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrCannotUpdate возвращается, когда бронирование в статусе, не допускающем изменений
	ErrCannotUpdate = errors.New("update_booking: booking cannot be updated")

	// ErrEmptySelection возвращается, когда не выбран ни один слот
	ErrEmptySelection = errors.New("update_booking: no slots selected")

	// ErrInvalidInterval возвращается, когда начало слота не раньше его конца
	ErrInvalidInterval = errors.New("update_booking: invalid slot interval")

	// ErrOverlap возвращается, когда выбранные слоты пересекаются
	ErrOverlap = errors.New("update_booking: selected slots overlap")

	// ErrTooManySlots возвращается, когда выбрано больше слотов, чем разрешено
	ErrTooManySlots = errors.New("update_booking: too many slots selected")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("update_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("update_booking: date is too far in the future")

	// ErrOutsideOpeningHours возвращается, когда слот выходит за часы работы корта
	ErrOutsideOpeningHours = errors.New("update_booking: slot is outside opening hours")

	// ErrSlotInPast возвращается, когда новый слот сегодняшнего дня уже начался
	ErrSlotInPast = errors.New("update_booking: slot has already started")

	// ErrSlotUnavailable возвращается, когда корт закрыт площадкой в это время
	ErrSlotUnavailable = errors.New("update_booking: court is unavailable at this time")

	// ErrSlotTaken возвращается, когда слот пересекается с другим активным бронированием
	ErrSlotTaken = errors.New("update_booking: slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
