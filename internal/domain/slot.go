package domain

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// TemplateSlot represents one canonical bookable time range of a facility.
// isActive=false means the slot is locked by exactly one coaching batch and
// is never offered for ad-hoc rental.
type TemplateSlot struct {
	ID         int64
	FacilityID int64
	StartTime  types.TimeString
	EndTime    types.TimeString
	Label      string
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps returns true if the [StartTime, EndTime) ranges of two slots intersect.
// Touching boundaries (one ends exactly where the other starts) do not overlap.
func (s *TemplateSlot) Overlaps(other *TemplateSlot) bool {
	return s.StartTime.IsBefore(other.EndTime) && s.EndTime.IsAfter(other.StartTime)
}

// SlotStatus represents the availability status of a template slot on a date
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
)

// SlotAvailability статус одного шаблонного слота на конкретную дату.
// Reason заполняется только для заблокированных слотов.
type SlotAvailability struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string
	Status    SlotStatus
	Reason    string
}

// SlotLabel возвращает человекочитаемую подпись слота, например "07:00 AM - 08:00 AM"
func SlotLabel(start, end types.TimeString) string {
	return start.Format12h() + " - " + end.Format12h()
}
