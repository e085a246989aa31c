package update_facility_status

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

type FacilityService interface {
	UpdateStatus(ctx context.Context, id int64, status domain.FacilityStatus) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
