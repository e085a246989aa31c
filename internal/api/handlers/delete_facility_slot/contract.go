package delete_facility_slot

import "context"

type SlotTemplateService interface {
	DeleteSlot(ctx context.Context, facilityID, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
