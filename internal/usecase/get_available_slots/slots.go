package get_available_slots

import (
	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

const (
	reasonMaintenance = "facility under maintenance"
	reasonDisabled    = "facility disabled"
	reasonBlocked     = "blocked"
)

// resolveSlots вычисляет статус каждого слота шаблона на дату.
// Чистая функция без побочных эффектов, повторный вызов на тех же
// данных дает тот же результат.
//
// Приоритет статусов (сверху вниз, первый сработавший выигрывает):
//  1. Площадка в maintenance или disabled - все слоты blocked.
//  2. Слот заблокирован вручную на эту дату - blocked.
//  3. Слот пересекается с активным бронированием - booked.
//  4. Иначе - available.
func resolveSlots(
	facility *domain.Facility,
	template []*domain.TemplateSlot,
	blocked *domain.BlockedDateEntry,
	bookings []*domain.Booking,
) []domain.SlotAvailability {
	result := make([]domain.SlotAvailability, 0, len(template))

	for _, slot := range template {
		availability := domain.SlotAvailability{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Label:     slot.Label,
			Status:    domain.SlotAvailable,
		}

		switch {
		case !facility.IsBookable():
			availability.Status = domain.SlotBlocked
			availability.Reason = facilityReason(facility.Status)

		case blocked != nil && blocked.Contains(slot.StartTime):
			availability.Status = domain.SlotBlocked
			availability.Reason = blockReason(blocked, slot.StartTime)

		case hasOverlappingBooking(slot, bookings):
			availability.Status = domain.SlotBooked
		}

		result = append(result, availability)
	}

	return result
}

// hasOverlappingBooking проверяет пересечение слота с активным бронированием.
// Пересечение строгое: граничащие интервалы (конец одного равен началу
// другого) пересечением не считаются.
func hasOverlappingBooking(slot *domain.TemplateSlot, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		for _, booked := range booking.Slots {
			if booked.StartTime.IsBefore(slot.EndTime) && booked.EndTime.IsAfter(slot.StartTime) {
				return true
			}
		}
	}
	return false
}

// facilityReason возвращает причину блокировки по статусу площадки
func facilityReason(status domain.FacilityStatus) string {
	if status == domain.FacilityMaintenance {
		return reasonMaintenance
	}
	return reasonDisabled
}

// blockReason возвращает причину ручной блокировки слота
func blockReason(entry *domain.BlockedDateEntry, startTime types.TimeString) string {
	for _, s := range entry.Slots {
		if s.StartTime == startTime && s.Reason != "" {
			return s.Reason
		}
	}
	return reasonBlocked
}
