package list_discounts

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// RuleResponse HTTP модель правила скидки
type RuleResponse struct {
	ID            int64         `json:"id"`
	Code          *string       `json:"code,omitempty"`
	Title         string        `json:"title"`
	Type          string        `json:"type"`
	Value         float64       `json:"value"`
	ApplicableFor string        `json:"applicableFor"`
	Scope         ScopeResponse `json:"scope"`
	MinSlotCount  *int          `json:"minSlotCount,omitempty"`
	ValidFrom     *string       `json:"validFrom,omitempty"`
	ValidTill     *string       `json:"validTill,omitempty"`
	IsActive      bool          `json:"isActive"`
}

// ScopeResponse область действия правила в ответе
type ScopeResponse struct {
	Type     string  `json:"type"`
	SportID  *int64  `json:"sportId,omitempty"`
	BatchID  *int64  `json:"batchId,omitempty"`
	PlanType *string `json:"planType,omitempty"`
}

// RuleListResponse список правил скидок
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}

// FromDomainList конвертирует доменные правила в модель ответа
func FromDomainList(rules []*domain.DiscountRule) RuleListResponse {
	out := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		resp := RuleResponse{
			ID:            rule.ID,
			Code:          rule.Code,
			Title:         rule.Title,
			Type:          string(rule.Type),
			Value:         rule.Value,
			ApplicableFor: string(rule.ApplicableFor),
			Scope: ScopeResponse{
				Type:     string(rule.Scope.Type),
				SportID:  rule.Scope.SportID,
				BatchID:  rule.Scope.BatchID,
				PlanType: rule.Scope.PlanType,
			},
			MinSlotCount: rule.MinSlotCount,
			IsActive:     rule.IsActive,
		}
		if rule.ValidFrom != nil {
			s := rule.ValidFrom.Format(time.RFC3339)
			resp.ValidFrom = &s
		}
		if rule.ValidTill != nil {
			s := rule.ValidTill.Format(time.RFC3339)
			resp.ValidTill = &s
		}
		out = append(out, resp)
	}
	return RuleListResponse{Rules: out, Total: len(out)}
}
