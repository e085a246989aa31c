package pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// DiscountRepository интерфейс репозитория правил скидок
type DiscountRepository interface {
	Create(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error)
	GetByCode(ctx context.Context, code string, target domain.DiscountTarget) (*domain.DiscountRule, error)
	GetAutoRules(ctx context.Context, target domain.DiscountTarget) ([]*domain.DiscountRule, error)
	List(ctx context.Context, target *domain.DiscountTarget) ([]*domain.DiscountRule, error)
	Deactivate(ctx context.Context, id int64) error
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
