package preview_discount

import (
	"context"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

type PricingService interface {
	Preview(ctx context.Context, baseAmount float64, target domain.DiscountTarget, pctx domain.PricingContext, codes []string) (*domain.PriceBreakdown, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
