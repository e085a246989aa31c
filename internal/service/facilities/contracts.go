package facilities

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	List(ctx context.Context) ([]*domain.Facility, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FacilityStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
