package list_discounts

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

type PricingService interface {
	ListRules(ctx context.Context, target *domain.DiscountTarget) ([]*domain.DiscountRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
