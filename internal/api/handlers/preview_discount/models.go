package preview_discount

import (
	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// PreviewRequest модель запроса предпросмотра цены
type PreviewRequest struct {
	BaseAmount    float64         `json:"baseAmount"`
	ApplicableFor string          `json:"applicableFor"`
	Codes         []string        `json:"codes,omitempty"`
	Context       *ContextRequest `json:"context,omitempty"`
}

// ContextRequest контекст транзакции для матчинга областей действия
type ContextRequest struct {
	SportID   *int64  `json:"sportId,omitempty"`
	BatchID   *int64  `json:"batchId,omitempty"`
	PlanType  *string `json:"planType,omitempty"`
	SlotCount int     `json:"slotCount,omitempty"`
}

// ToPricingContext преобразует контекст запроса в доменную модель
func (r *PreviewRequest) ToPricingContext() domain.PricingContext {
	if r.Context == nil {
		return domain.PricingContext{}
	}
	return domain.PricingContext{
		SportID:   r.Context.SportID,
		BatchID:   r.Context.BatchID,
		PlanType:  r.Context.PlanType,
		SlotCount: r.Context.SlotCount,
	}
}

// FromDomain конвертирует раскладку цены в HTTP модель
func FromDomain(breakdown *domain.PriceBreakdown) handlers.PricingResponse {
	applied := make([]handlers.AppliedDiscountResponse, 0, len(breakdown.Applied))
	for _, a := range breakdown.Applied {
		applied = append(applied, handlers.AppliedDiscountResponse{
			RuleID: a.RuleID,
			Title:  a.Title,
			Type:   string(a.Type),
			Value:  a.Value,
			Amount: a.Amount,
		})
	}
	return handlers.PricingResponse{
		BaseAmount:    breakdown.BaseAmount,
		Applied:       applied,
		TotalDiscount: breakdown.TotalDiscount,
		FinalAmount:   breakdown.FinalAmount,
	}
}
