package delete_batch

import "context"

// BatchService интерфейс сервиса тренировочных групп
type BatchService interface {
	DeleteBatch(ctx context.Context, batchID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
