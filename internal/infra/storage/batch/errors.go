package batch

import "errors"

var (
	// ErrBatchNotFound возвращается, когда тренировочная группа не найдена
	ErrBatchNotFound = errors.New("batch.repository: batch not found")

	// ErrSlotTaken возвращается при нарушении уникальности slot_id:
	// слот уже закреплён за другой группой
	ErrSlotTaken = errors.New("batch.repository: slot is assigned to another batch")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("batch.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("batch.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("batch.repository: failed to scan row")
)
