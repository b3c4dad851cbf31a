package pricerules

import "errors"

var (
	// ErrRuleNotFound возвращается, когда ценовое правило не найдено
	ErrRuleNotFound = errors.New("pricerules.service: rule not found")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("pricerules.service: court not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер корта
	ErrAccessDenied = errors.New("pricerules.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricerules.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricerules.service: internal error")
)
