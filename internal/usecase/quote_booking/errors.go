package quote_booking

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("quote_booking: court not found")

	// ErrEmptySelection возвращается, когда не выбран ни один слот
	ErrEmptySelection = errors.New("quote_booking: no slots selected")

	// ErrInvalidInterval возвращается, когда начало слота не раньше его конца
	ErrInvalidInterval = errors.New("quote_booking: invalid slot interval")

	// ErrOverlap возвращается, когда выбранные слоты пересекаются
	ErrOverlap = errors.New("quote_booking: selected slots overlap")

	// ErrTooManySlots возвращается, когда выбрано больше слотов, чем разрешено
	ErrTooManySlots = errors.New("quote_booking: too many slots selected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_booking: internal error")
)
