package get_available_slots

import "errors"

var (
	// ErrInvalidData возвращается при некорректных входных данных
	ErrInvalidData = errors.New("get_available_slots: invalid input data")

	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("get_available_slots: facility not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_available_slots: internal error")
)
