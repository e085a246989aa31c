package blockeddates

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись блокировки не найдена
	ErrEntryNotFound = errors.New("blockeddates.repository: entry not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockeddates.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockeddates.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockeddates.repository: failed to scan row")
)
