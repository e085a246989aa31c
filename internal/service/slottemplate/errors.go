package slottemplate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("slottemplate: facility not found")

	// ErrSlotNotFound возвращается, когда слот расписания не найден
	ErrSlotNotFound = errors.New("slottemplate: slot not found")

	// ErrSlotOverlap возвращается, когда интервалы слотов пересекаются
	ErrSlotOverlap = errors.New("slottemplate: slot intervals overlap")

	// ErrSlotInUse возвращается при попытке удалить слот с активными
	// бронированиями или привязанной группой
	ErrSlotInUse = errors.New("slottemplate: slot is in use")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slottemplate: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slottemplate: internal error")
)

// OverlapError детализирует пересечение интервалов: какие пары слотов конфликтуют
type OverlapError struct {
	Pairs []OverlapPair
}

// OverlapPair пара пересекающихся интервалов
type OverlapPair struct {
	First  types.TimeString
	Second types.TimeString
}

// Error возвращает текст ошибки со списком конфликтующих интервалов
func (e *OverlapError) Error() string {
	parts := make([]string, 0, len(e.Pairs))
	for _, p := range e.Pairs {
		parts = append(parts, fmt.Sprintf("%s/%s", p.First, p.Second))
	}
	return fmt.Sprintf("%v: %s", ErrSlotOverlap, strings.Join(parts, ", "))
}

// Unwrap возвращает базовую sentinel-ошибку
func (e *OverlapError) Unwrap() error {
	return ErrSlotOverlap
}
