package update_batch_slot

import "context"

type BatchLockService interface {
	Acquire(ctx context.Context, batchID, slotID int64) error
	Release(ctx context.Context, batchID int64) error
	Transfer(ctx context.Context, batchID, newSlotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
