package unblock_slots

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

type BlockedDatesService interface {
	UnblockSlot(ctx context.Context, entryID int64, startTime types.TimeString) error
	UnblockAll(ctx context.Context, entryID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
