package domain

import "time"

// DiscountType способ вычисления скидки
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// DiscountTarget к какому типу транзакции применима скидка
type DiscountTarget string

const (
	TargetEnrollment DiscountTarget = "enrollment"
	TargetTurf       DiscountTarget = "turf"
)

// ScopeType тип области действия правила скидки
type ScopeType string

const (
	ScopeGlobal ScopeType = "global"
	ScopeSport  ScopeType = "sport"
	ScopeBatch  ScopeType = "batch"
	ScopePlan   ScopeType = "plan"
)

// DiscountScope tagged variant describing what the rule applies to.
// Exactly one target field is meaningful depending on Type.
type DiscountScope struct {
	Type     ScopeType
	SportID  *int64
	BatchID  *int64
	PlanType *string
}

// PricingContext контекст транзакции, против которого матчится область действия
type PricingContext struct {
	SportID   *int64
	BatchID   *int64
	PlanType  *string
	SlotCount int
}

// Matches returns true if the scope covers the given pricing context
func (s DiscountScope) Matches(ctx PricingContext) bool {
	switch s.Type {
	case ScopeGlobal:
		return true
	case ScopeSport:
		return s.SportID != nil && ctx.SportID != nil && *s.SportID == *ctx.SportID
	case ScopeBatch:
		return s.BatchID != nil && ctx.BatchID != nil && *s.BatchID == *ctx.BatchID
	case ScopePlan:
		return s.PlanType != nil && ctx.PlanType != nil && *s.PlanType == *ctx.PlanType
	default:
		return false
	}
}

// DiscountRule одно правило скидки.
// Code == nil означает auto-apply кандидата: правило никогда не применяется
// по коду и отбирается только автоматическим режимом. Применённые значения
// снимаются в breakdown, поэтому правило можно редактировать и удалять,
// не ломая историю транзакций.
type DiscountRule struct {
	ID            int64
	Code          *string
	Title         string
	Type          DiscountType
	Value         float64
	ApplicableFor DiscountTarget
	Scope         DiscountScope
	MinSlotCount  *int
	ValidFrom     *time.Time
	ValidTill     *time.Time
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAutoRule returns true if the rule is selected by auto mode only
func (r *DiscountRule) IsAutoRule() bool {
	return r.Code == nil
}

// InWindow returns true if the rule is valid at the given moment
func (r *DiscountRule) InWindow(now time.Time) bool {
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidTill != nil && now.After(*r.ValidTill) {
		return false
	}
	return true
}

// AppliesTo returns true if the rule is active, inside its validity window,
// targets the given transaction type and its scope matches the context
func (r *DiscountRule) AppliesTo(target DiscountTarget, ctx PricingContext, now time.Time) bool {
	if !r.IsActive || r.ApplicableFor != target || !r.InWindow(now) {
		return false
	}
	if r.MinSlotCount != nil && ctx.SlotCount < *r.MinSlotCount {
		return false
	}
	return r.Scope.Matches(ctx)
}

// AppliedDiscount одна строка в breakdown: снимок правила на момент применения
type AppliedDiscount struct {
	RuleID int64
	Title  string
	Type   DiscountType
	Value  float64
	Amount float64 // Фактически списанная сумма с учётом clamp
}

// PriceBreakdown результат работы discount engine: аудируемая раскладка цены
type PriceBreakdown struct {
	BaseAmount    float64
	Applied       []AppliedDiscount
	TotalDiscount float64
	FinalAmount   float64
}
