package batchlock

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов расписания
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TemplateSlot, error)
	AcquireLock(ctx context.Context, facilityID, slotID int64) error
	ReleaseLock(ctx context.Context, facilityID, slotID int64) error
}

// BatchRepository интерфейс репозитория групп
type BatchRepository interface {
	Create(ctx context.Context, b *domain.Batch) (*domain.Batch, error)
	GetByID(ctx context.Context, id int64) (*domain.Batch, error)
	UpdateSlotID(ctx context.Context, batchID int64, slotID *int64) error
	Delete(ctx context.Context, id int64) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
