package create_facility

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

type FacilityService interface {
	Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
