package create_batch

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// BatchService интерфейс сервиса тренировочных групп
type BatchService interface {
	CreateBatch(ctx context.Context, batch *domain.Batch) (*domain.Batch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
