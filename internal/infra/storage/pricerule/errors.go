package pricerule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда ценовое правило не найдено
	ErrRuleNotFound = errors.New("pricerule.repository: rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pricerule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pricerule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pricerule.repository: failed to scan row")
)
