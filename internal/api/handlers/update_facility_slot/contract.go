package update_facility_slot

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/service/slottemplate"
)

type SlotTemplateService interface {
	UpdateSlot(ctx context.Context, facilityID, slotID int64, interval slottemplate.SlotInterval) (*domain.TemplateSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
