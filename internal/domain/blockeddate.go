package domain

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// BlockedSlot one blocked template slot start time with the blocking reason
type BlockedSlot struct {
	StartTime types.TimeString
	Reason    string
}

// BlockedDateEntry removes specific template slots from availability on one
// concrete date. One entry per (facility, date); deleted when the last
// blocked slot is removed.
type BlockedDateEntry struct {
	ID         int64
	FacilityID int64
	Date       time.Time
	Slots      []BlockedSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains returns true if the given start time is blocked by this entry
func (e *BlockedDateEntry) Contains(t types.TimeString) bool {
	for _, s := range e.Slots {
		if s.StartTime == t {
			return true
		}
	}
	return false
}

// IsEmpty returns true if the entry has no blocked slots left
func (e *BlockedDateEntry) IsEmpty() bool {
	return len(e.Slots) == 0
}
