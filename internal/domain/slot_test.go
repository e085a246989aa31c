package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

func slot(start, end string) *TemplateSlot {
	return &TemplateSlot{StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func TestTemplateSlot_Overlaps(t *testing.T) {
	assert.True(t, slot("07:00", "08:00").Overlaps(slot("07:30", "08:30")))
	assert.True(t, slot("07:00", "09:00").Overlaps(slot("07:30", "08:00")), "containment is overlap")
	assert.True(t, slot("07:00", "08:00").Overlaps(slot("07:00", "08:00")), "identical intervals overlap")

	// Граничащие интервалы пересечением не считаются
	assert.False(t, slot("07:00", "08:00").Overlaps(slot("08:00", "09:00")))
	assert.False(t, slot("08:00", "09:00").Overlaps(slot("07:00", "08:00")))
	assert.False(t, slot("07:00", "08:00").Overlaps(slot("09:00", "10:00")))
}

func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "07:00 AM - 08:00 AM", SlotLabel("07:00", "08:00"))
	assert.Equal(t, "06:00 PM - 07:30 PM", SlotLabel("18:00", "19:30"))
}
