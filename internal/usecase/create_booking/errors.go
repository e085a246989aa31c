package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrFacilityUnavailable возвращается, когда площадка в maintenance или disabled
	ErrFacilityUnavailable = errors.New("create_booking: facility is not bookable")

	// ErrSportNotSupported возвращается, когда площадка не поддерживает вид спорта
	ErrSportNotSupported = errors.New("create_booking: sport is not supported by this facility")

	// ErrInvalidSlots возвращается, когда запрошенные времена не
	// соответствуют активным слотам шаблона площадки
	ErrInvalidSlots = errors.New("create_booking: slots do not match facility template")

	// ErrSlotConflict возвращается, когда хотя бы один из запрошенных
	// слотов занят или заблокирован
	ErrSlotConflict = errors.New("create_booking: slot conflict")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid rental date")

	// ErrPaymentGateway возвращается, когда платежный шлюз недоступен
	ErrPaymentGateway = errors.New("create_booking: payment gateway error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// InvalidSlotsError перечисляет времена, которых нет в шаблоне площадки
type InvalidSlotsError struct {
	StartTimes []types.TimeString
}

// Error возвращает текст ошибки со списком некорректных времен
func (e *InvalidSlotsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidSlots, joinTimes(e.StartTimes))
}

// Unwrap возвращает базовую sentinel-ошибку
func (e *InvalidSlotsError) Unwrap() error {
	return ErrInvalidSlots
}

// SlotConflictError перечисляет занятые или заблокированные слоты
type SlotConflictError struct {
	StartTimes []types.TimeString
}

// Error возвращает текст ошибки со списком конфликтующих слотов
func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSlotConflict, joinTimes(e.StartTimes))
}

// Unwrap возвращает базовую sentinel-ошибку
func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}

func joinTimes(times []types.TimeString) string {
	parts := make([]string, 0, len(times))
	for _, t := range times {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}
