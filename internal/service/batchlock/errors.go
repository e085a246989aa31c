package batchlock

import "errors"

var (
	// ErrBatchNotFound возвращается, когда группа не найдена
	ErrBatchNotFound = errors.New("batchlock: batch not found")

	// ErrSlotNotFound возвращается, когда слот расписания не найден
	ErrSlotNotFound = errors.New("batchlock: slot not found")

	// ErrSlotLocked возвращается, когда слот уже захвачен другой группой
	ErrSlotLocked = errors.New("batchlock: slot is already locked")

	// ErrSlotMismatch возвращается, когда слот принадлежит другой площадке
	ErrSlotMismatch = errors.New("batchlock: slot belongs to another facility")

	// ErrNoSlotHeld возвращается при освобождении, когда группа не держит слот
	ErrNoSlotHeld = errors.New("batchlock: batch holds no slot")

	// ErrSlotHeld возвращается при захвате, когда группа уже держит другой
	// слот: сначала освобождение или перевод, иначе старый слот утечет
	ErrSlotHeld = errors.New("batchlock: batch already holds another slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("batchlock: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("batchlock: internal error")
)
