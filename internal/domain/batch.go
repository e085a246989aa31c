package domain

import "time"

// BatchStatus derived status of a coaching batch relative to today
type BatchStatus string

const (
	BatchUpcoming  BatchStatus = "upcoming"
	BatchOngoing   BatchStatus = "ongoing"
	BatchCompleted BatchStatus = "completed"
)

// Batch представляет регулярную тренировочную группу.
// SlotID != nil означает, что группа эксклюзивно держит один шаблонный слот
// площадки (is_active слота при этом сброшен).
type Batch struct {
	ID            int64
	FacilityID    int64
	SlotID        *int64
	Name          string
	Schedule      string
	Capacity      int
	EnrolledCount int
	Level         string
	StartDate     time.Time
	EndDate       time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSlot returns true if the batch currently holds a slot lock
func (b *Batch) HasSlot() bool {
	return b.SlotID != nil
}

// HasCapacity returns true if new enrollments are possible
func (b *Batch) HasCapacity() bool {
	return b.EnrolledCount < b.Capacity
}

// Status derives the batch status from its date range and the current time
func (b *Batch) Status(now time.Time) BatchStatus {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case b.StartDate.After(today):
		return BatchUpcoming
	case b.EndDate.Before(today):
		return BatchCompleted
	default:
		return BatchOngoing
	}
}
