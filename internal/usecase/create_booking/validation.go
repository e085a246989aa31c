package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}
	if req.SportID <= 0 {
		return fmt.Errorf("%w: sportID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.StartTimes) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if len(req.StartTimes) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}

	seen := make(map[types.TimeString]struct{}, len(req.StartTimes))
	for _, t := range req.StartTimes {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, t)
		}
		if _, ok := seen[t]; ok {
			return fmt.Errorf("%w: duplicate start time %s", ErrInvalidInput, t)
		}
		seen[t] = struct{}{}
	}

	if !domain.ValidPaymentMode(req.PaymentMode) {
		return fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, req.PaymentMode)
	}
	if len(req.DiscountCodes) > domain.MaxDiscountCodesPerRequest {
		return fmt.Errorf("%w: at most %d discount codes per booking", ErrInvalidInput, domain.MaxDiscountCodesPerRequest)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата аренды не в прошлом
func validateDate(rentalDate, now time.Time) error {
	dateOnly := time.Date(rentalDate.Year(), rentalDate.Month(), rentalDate.Day(), 0, 0, 0, 0, rentalDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// matchTemplate сопоставляет запрошенные времена с активными слотами
// шаблона. Возвращает занимаемые интервалы или список времен, которых
// в шаблоне нет.
func matchTemplate(startTimes []types.TimeString, template []*domain.TemplateSlot) ([]domain.BookedSlot, []types.TimeString) {
	byStart := make(map[types.TimeString]*domain.TemplateSlot, len(template))
	for _, slot := range template {
		byStart[slot.StartTime] = slot
	}

	slots := make([]domain.BookedSlot, 0, len(startTimes))
	var invalid []types.TimeString
	for _, t := range startTimes {
		slot, ok := byStart[t]
		if !ok {
			invalid = append(invalid, t)
			continue
		}
		slots = append(slots, domain.BookedSlot{StartTime: slot.StartTime, EndTime: slot.EndTime})
	}

	if len(invalid) > 0 {
		return nil, invalid
	}
	return slots, nil
}

// findBlockedConflicts возвращает запрошенные слоты, заблокированные на дату
func findBlockedConflicts(slots []domain.BookedSlot, blocked *domain.BlockedDateEntry) []types.TimeString {
	if blocked == nil {
		return nil
	}
	var conflicts []types.TimeString
	for _, slot := range slots {
		if blocked.Contains(slot.StartTime) {
			conflicts = append(conflicts, slot.StartTime)
		}
	}
	return conflicts
}

// findBookingConflicts возвращает запрошенные слоты, пересекающиеся с
// активными бронированиями. Граничащие интервалы конфликтом не считаются.
func findBookingConflicts(slots []domain.BookedSlot, bookings []*domain.Booking) []types.TimeString {
	var conflicts []types.TimeString
	for _, slot := range slots {
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			overlaps := false
			for _, booked := range booking.Slots {
				if booked.StartTime.IsBefore(slot.EndTime) && booked.EndTime.IsAfter(slot.StartTime) {
					overlaps = true
					break
				}
			}
			if overlaps {
				conflicts = append(conflicts, slot.StartTime)
				break
			}
		}
	}
	return conflicts
}

// baseAmount считает базовую стоимость аренды: ставка площадки за
// каждый занятый слот, независимо от его длительности
func baseAmount(rate float64, slots []domain.BookedSlot) float64 {
	return rate * float64(len(slots))
}
