package courts

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден в сервисе площадок
	ErrCourtNotFound = errors.New("courts.service: court not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("courts.service: internal error")
)
