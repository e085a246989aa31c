package list_facilities

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// FacilityService интерфейс сервиса площадок
type FacilityService interface {
	List(ctx context.Context) ([]*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
