package create_discount

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// CreateRuleRequest модель запроса на создание правила скидки
type CreateRuleRequest struct {
	Code          *string      `json:"code,omitempty"`
	Title         string       `json:"title"`
	Type          string       `json:"type"`
	Value         float64      `json:"value"`
	ApplicableFor string       `json:"applicableFor"`
	Scope         ScopeRequest `json:"scope"`
	MinSlotCount  *int         `json:"minSlotCount,omitempty"`
	ValidFrom     *string      `json:"validFrom,omitempty"`
	ValidTill     *string      `json:"validTill,omitempty"`
}

// ScopeRequest область действия правила
type ScopeRequest struct {
	Type     string  `json:"type"`
	SportID  *int64  `json:"sportId,omitempty"`
	BatchID  *int64  `json:"batchId,omitempty"`
	PlanType *string `json:"planType,omitempty"`
}

// ToDomain преобразует запрос в доменное правило.
// Даты принимаются в формате RFC3339.
func (r *CreateRuleRequest) ToDomain() (*domain.DiscountRule, error) {
	rule := &domain.DiscountRule{
		Code:          r.Code,
		Title:         r.Title,
		Type:          domain.DiscountType(r.Type),
		Value:         r.Value,
		ApplicableFor: domain.DiscountTarget(r.ApplicableFor),
		Scope: domain.DiscountScope{
			Type:     domain.ScopeType(r.Scope.Type),
			SportID:  r.Scope.SportID,
			BatchID:  r.Scope.BatchID,
			PlanType: r.Scope.PlanType,
		},
		MinSlotCount: r.MinSlotCount,
		IsActive:     true,
	}

	if r.ValidFrom != nil {
		t, err := time.Parse(time.RFC3339, *r.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid validFrom: %v", err)
		}
		rule.ValidFrom = &t
	}
	if r.ValidTill != nil {
		t, err := time.Parse(time.RFC3339, *r.ValidTill)
		if err != nil {
			return nil, fmt.Errorf("invalid validTill: %v", err)
		}
		rule.ValidTill = &t
	}

	return rule, nil
}

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
	CreatedAt     string        `json:"createdAt"`
}

// ScopeResponse область действия правила в ответе
type ScopeResponse struct {
	Type     string  `json:"type"`
	SportID  *int64  `json:"sportId,omitempty"`
	BatchID  *int64  `json:"batchId,omitempty"`
	PlanType *string `json:"planType,omitempty"`
}

// FromDomain конвертирует доменное правило в HTTP модель
func FromDomain(rule *domain.DiscountRule) RuleResponse {
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
		CreatedAt:    rule.CreatedAt.Format(time.RFC3339),
	}
	if rule.ValidFrom != nil {
		s := rule.ValidFrom.Format(time.RFC3339)
		resp.ValidFrom = &s
	}
	if rule.ValidTill != nil {
		s := rule.ValidTill.Format(time.RFC3339)
		resp.ValidTill = &s
	}
	return resp
}
