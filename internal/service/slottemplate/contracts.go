package slottemplate

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов расписания
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.TemplateSlot) ([]*domain.TemplateSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.TemplateSlot, error)
	GetByFacility(ctx context.Context, facilityID int64, onlyActive bool) ([]*domain.TemplateSlot, error)
	Update(ctx context.Context, slot *domain.TemplateSlot) error
	Delete(ctx context.Context, id int64) error
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// BookingRepository интерфейс репозитория бронирований (проверка занятости слота)
type BookingRepository interface {
	CountActiveBySlotTime(ctx context.Context, facilityID int64, startTime types.TimeString, fromDate time.Time) (int, error)
}

// BatchRepository интерфейс репозитория групп (проверка привязки слота к группе)
type BatchRepository interface {
	GetBySlotID(ctx context.Context, slotID int64) (*domain.Batch, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
