package define_facility_slots

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/service/slottemplate"
)

type SlotTemplateService interface {
	DefineSlots(ctx context.Context, facilityID int64, intervals []slottemplate.SlotInterval) ([]*domain.TemplateSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
