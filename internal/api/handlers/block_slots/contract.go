package block_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

type BlockedDatesService interface {
	BlockSlots(ctx context.Context, facilityID int64, date time.Time, toBlock []domain.BlockedSlot) (*domain.BlockedDateEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
