package create_discount

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

type PricingService interface {
	CreateRule(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
