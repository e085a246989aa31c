package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается при попытке доступа к чужому бронированию
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel возвращается, когда бронирование уже отменено
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrNotPending возвращается при подтверждении оплаты не-pending бронирования
	ErrNotPending = errors.New("bookings: booking is not pending")

	// ErrInvalidSignature возвращается при неверной подписи платежного callback
	ErrInvalidSignature = errors.New("bookings: invalid payment signature")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
