package discount

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило скидки не найдено
	ErrRuleNotFound = errors.New("discount.repository: rule not found")

	// ErrDuplicateCode возвращается при нарушении уникальности кода скидки
	ErrDuplicateCode = errors.New("discount.repository: duplicate discount code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("discount.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("discount.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("discount.repository: failed to scan row")
)
