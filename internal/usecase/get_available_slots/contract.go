package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// SlotRepository интерфейс репозитория слотов расписания
type SlotRepository interface {
	GetByFacility(ctx context.Context, facilityID int64, onlyActive bool) ([]*domain.TemplateSlot, error)
}

// BlockedDateRepository интерфейс репозитория блокировок дат
type BlockedDateRepository interface {
	GetByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) (*domain.BlockedDateEntry, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
