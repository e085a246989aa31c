package slottemplate

import "errors"

var (
	// ErrSlotNotFound возвращается, когда шаблонный слот не найден
	ErrSlotNotFound = errors.New("slottemplate.repository: slot not found")

	// ErrSlotLocked возвращается, когда условный захват слота не удался:
	// слот уже удерживается другой группой
	ErrSlotLocked = errors.New("slottemplate.repository: slot is already locked")

	// ErrDuplicateSlot возвращается при нарушении уникальности (facility_id, start_time)
	ErrDuplicateSlot = errors.New("slottemplate.repository: duplicate slot start time")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slottemplate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slottemplate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slottemplate.repository: failed to scan row")
)
