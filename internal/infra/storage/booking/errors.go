package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда условная вставка занятых слотов
	// затронула меньше строк, чем запрошено: конкурентное бронирование
	// успело занять хотя бы один из слотов
	ErrSlotTaken = errors.New("booking.repository: slot already reserved")

	// ErrNotPending возвращается при попытке подтвердить оплату бронирования,
	// которое не находится в статусе pending
	ErrNotPending = errors.New("booking.repository: booking is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
