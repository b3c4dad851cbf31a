package venueservice

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден в VenueService
	ErrCourtNotFound = errors.New("venueservice client: court not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("venueservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("venueservice client: invalid response")
)
