package blockeddates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// BlockedDateRepository интерфейс репозитория блокировок дат
type BlockedDateRepository interface {
	UpsertEntry(ctx context.Context, facilityID int64, date time.Time) (int64, error)
	AddSlots(ctx context.Context, entryID int64, slots []domain.BlockedSlot) error
	GetByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) (*domain.BlockedDateEntry, error)
	GetByID(ctx context.Context, entryID int64) (*domain.BlockedDateEntry, error)
	RemoveSlot(ctx context.Context, entryID int64, startTime types.TimeString) error
	CountSlots(ctx context.Context, entryID int64) (int, error)
	DeleteEntry(ctx context.Context, entryID int64) error
}

// SlotRepository интерфейс репозитория слотов расписания
type SlotRepository interface {
	GetByFacility(ctx context.Context, facilityID int64, onlyActive bool) ([]*domain.TemplateSlot, error)
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
