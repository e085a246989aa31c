package blockeddates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("blockeddates: facility not found")

	// ErrEntryNotFound возвращается, когда блокировок на дату нет
	ErrEntryNotFound = errors.New("blockeddates: no blocks for this date")

	// ErrSlotNotBlocked возвращается, когда слот не заблокирован на дату
	ErrSlotNotBlocked = errors.New("blockeddates: slot is not blocked")

	// ErrInvalidSlots возвращается, когда времена не соответствуют
	// активным слотам шаблона площадки
	ErrInvalidSlots = errors.New("blockeddates: slots do not match facility template")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("blockeddates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blockeddates: internal error")
)

// InvalidSlotsError перечисляет времена, которых нет в шаблоне площадки
type InvalidSlotsError struct {
	StartTimes []types.TimeString
}

// Error возвращает текст ошибки со списком некорректных времен
func (e *InvalidSlotsError) Error() string {
	parts := make([]string, 0, len(e.StartTimes))
	for _, t := range e.StartTimes {
		parts = append(parts, t.String())
	}
	return fmt.Sprintf("%v: %s", ErrInvalidSlots, strings.Join(parts, ", "))
}

// Unwrap возвращает базовую sentinel-ошибку
func (e *InvalidSlotsError) Unwrap() error {
	return ErrInvalidSlots
}
