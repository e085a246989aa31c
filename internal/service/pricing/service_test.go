package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	discountRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/discount"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// fakeDiscountRepo in-memory репозиторий правил для тестов
type fakeDiscountRepo struct {
	rules  []*domain.DiscountRule
	nextID int64
}

func (f *fakeDiscountRepo) Create(_ context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error) {
	if rule.Code != nil {
		for _, r := range f.rules {
			if r.Code != nil && *r.Code == *rule.Code {
				return nil, discountRepo.ErrDuplicateCode
			}
		}
	}
	f.nextID++
	stored := *rule
	stored.ID = f.nextID
	f.rules = append(f.rules, &stored)
	return &stored, nil
}

func (f *fakeDiscountRepo) GetByCode(_ context.Context, code string, target domain.DiscountTarget) (*domain.DiscountRule, error) {
	for _, r := range f.rules {
		if r.Code != nil && *r.Code == code && r.ApplicableFor == target {
			return r, nil
		}
	}
	return nil, discountRepo.ErrRuleNotFound
}

func (f *fakeDiscountRepo) GetAutoRules(_ context.Context, target domain.DiscountTarget) ([]*domain.DiscountRule, error) {
	// id ASC, как в SQL-репозитории
	var out []*domain.DiscountRule
	for _, r := range f.rules {
		if r.Code == nil && r.ApplicableFor == target && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDiscountRepo) List(_ context.Context, target *domain.DiscountTarget) ([]*domain.DiscountRule, error) {
	var out []*domain.DiscountRule
	for _, r := range f.rules {
		if target == nil || r.ApplicableFor == *target {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDiscountRepo) Deactivate(_ context.Context, id int64) error {
	for _, r := range f.rules {
		if r.ID == id {
			r.IsActive = false
			return nil
		}
	}
	return discountRepo.ErrRuleNotFound
}

func newTestService(repo *fakeDiscountRepo) *Service {
	return &Service{
		repo:         repo,
		timeProvider: fixedTime{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)},
		logger:       nopLogger{},
	}
}

func strPtr(s string) *string { return &s }

func codeRule(code string, typ domain.DiscountType, value float64) *domain.DiscountRule {
	return &domain.DiscountRule{
		Code:          strPtr(code),
		Title:         "rule " + code,
		Type:          typ,
		Value:         value,
		ApplicableFor: domain.TargetTurf,
		Scope:         domain.DiscountScope{Type: domain.ScopeGlobal},
		IsActive:      true,
	}
}

func autoRule(typ domain.DiscountType, value float64) *domain.DiscountRule {
	return &domain.DiscountRule{
		Title:         "auto",
		Type:          typ,
		Value:         value,
		ApplicableFor: domain.TargetTurf,
		Scope:         domain.DiscountScope{Type: domain.ScopeGlobal},
		IsActive:      true,
	}
}

func TestPriceWithCodes_CallerOrder(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, codeRule("TEN", domain.DiscountPercentage, 10))
	require.NoError(t, err)
	_, err = svc.CreateRule(ctx, codeRule("FIFTY", domain.DiscountFlat, 50))
	require.NoError(t, err)

	pctx := domain.PricingContext{SlotCount: 1}

	b, err := svc.PriceWithCodes(ctx, 1000, domain.TargetTurf, pctx, []string{"TEN", "FIFTY"})
	require.NoError(t, err)
	assert.Equal(t, 850.0, b.FinalAmount)

	b, err = svc.PriceWithCodes(ctx, 1000, domain.TargetTurf, pctx, []string{"FIFTY", "TEN"})
	require.NoError(t, err)
	assert.Equal(t, 855.0, b.FinalAmount)
}

func TestPriceWithCodes_UnknownCode(t *testing.T) {
	svc := newTestService(&fakeDiscountRepo{})
	ctx := context.Background()

	_, err := svc.PriceWithCodes(ctx, 1000, domain.TargetTurf, domain.PricingContext{}, []string{"NOPE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodeNotFound)

	var codeErr *CodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "NOPE", codeErr.Code)
}

func TestPriceWithCodes_DuplicateCode(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, codeRule("TEN", domain.DiscountPercentage, 10))
	require.NoError(t, err)

	_, err = svc.PriceWithCodes(ctx, 1000, domain.TargetTurf, domain.PricingContext{}, []string{"TEN", "TEN"})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestPriceWithCodes_NotApplicable(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	// Правило для спорта 5 не подходит контексту со спортом 7
	rule := codeRule("CRICKET", domain.DiscountPercentage, 15)
	sportID := int64(5)
	rule.Scope = domain.DiscountScope{Type: domain.ScopeSport, SportID: &sportID}
	_, err := svc.CreateRule(ctx, rule)
	require.NoError(t, err)

	otherSport := int64(7)
	_, err = svc.PriceWithCodes(ctx, 1000, domain.TargetTurf, domain.PricingContext{SportID: &otherSport}, []string{"CRICKET"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodeNotApplicable)

	var codeErr *CodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "CRICKET", codeErr.Code)
}

func TestPriceWithCodes_ExpiredRule(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	rule := codeRule("OLD", domain.DiscountFlat, 100)
	till := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rule.ValidTill = &till
	_, err := svc.CreateRule(ctx, rule)
	require.NoError(t, err)

	_, err = svc.PriceWithCodes(ctx, 1000, domain.TargetTurf, domain.PricingContext{}, []string{"OLD"})
	assert.ErrorIs(t, err, ErrCodeNotApplicable)
}

func TestPriceWithCodes_IgnoresAutoRules(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, autoRule(domain.DiscountPercentage, 50))
	require.NoError(t, err)
	_, err = svc.CreateRule(ctx, codeRule("TEN", domain.DiscountPercentage, 10))
	require.NoError(t, err)

	// Режим явных кодов: auto-правило не подмешивается
	b, err := svc.PriceWithCodes(ctx, 1000, domain.TargetTurf, domain.PricingContext{}, []string{"TEN"})
	require.NoError(t, err)
	require.Len(t, b.Applied, 1)
	assert.Equal(t, 900.0, b.FinalAmount)
}

func TestPriceAuto_SelectsApplicableInIDOrder(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, autoRule(domain.DiscountPercentage, 10)) // id=1
	require.NoError(t, err)
	_, err = svc.CreateRule(ctx, autoRule(domain.DiscountFlat, 50)) // id=2
	require.NoError(t, err)
	// Кодовое правило в auto-режим не попадает
	_, err = svc.CreateRule(ctx, codeRule("SECRET", domain.DiscountPercentage, 90))
	require.NoError(t, err)

	b, err := svc.PriceAuto(ctx, 1000, domain.TargetTurf, domain.PricingContext{})
	require.NoError(t, err)
	require.Len(t, b.Applied, 2)
	assert.Equal(t, int64(1), b.Applied[0].RuleID)
	assert.Equal(t, int64(2), b.Applied[1].RuleID)
	assert.Equal(t, 850.0, b.FinalAmount)
}

func TestPriceAuto_MinSlotCount(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	rule := autoRule(domain.DiscountPercentage, 20)
	minSlots := 3
	rule.MinSlotCount = &minSlots
	_, err := svc.CreateRule(ctx, rule)
	require.NoError(t, err)

	b, err := svc.PriceAuto(ctx, 1000, domain.TargetTurf, domain.PricingContext{SlotCount: 2})
	require.NoError(t, err)
	assert.Empty(t, b.Applied)
	assert.Equal(t, 1000.0, b.FinalAmount)

	b, err = svc.PriceAuto(ctx, 1000, domain.TargetTurf, domain.PricingContext{SlotCount: 3})
	require.NoError(t, err)
	require.Len(t, b.Applied, 1)
	assert.Equal(t, 800.0, b.FinalAmount)
}

func TestPreview_ModeSelection(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, autoRule(domain.DiscountPercentage, 10))
	require.NoError(t, err)
	_, err = svc.CreateRule(ctx, codeRule("FLAT50", domain.DiscountFlat, 50))
	require.NoError(t, err)

	// Без кодов - auto
	b, err := svc.Preview(ctx, 1000, domain.TargetTurf, domain.PricingContext{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 900.0, b.FinalAmount)

	// С кодами - только коды
	b, err = svc.Preview(ctx, 1000, domain.TargetTurf, domain.PricingContext{}, []string{"FLAT50"})
	require.NoError(t, err)
	assert.Equal(t, 950.0, b.FinalAmount)

	// Отрицательная база
	_, err = svc.Preview(ctx, -1, domain.TargetTurf, domain.PricingContext{}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRule_Validation(t *testing.T) {
	svc := newTestService(&fakeDiscountRepo{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(r *domain.DiscountRule)
	}{
		{"empty title", func(r *domain.DiscountRule) { r.Title = "" }},
		{"zero value", func(r *domain.DiscountRule) { r.Value = 0 }},
		{"percentage over 100", func(r *domain.DiscountRule) { r.Value = 120 }},
		{"unknown type", func(r *domain.DiscountRule) { r.Type = "bogus" }},
		{"unknown target", func(r *domain.DiscountRule) { r.ApplicableFor = "bogus" }},
		{"sport scope without sportId", func(r *domain.DiscountRule) {
			r.Scope = domain.DiscountScope{Type: domain.ScopeSport}
		}},
		{"empty code", func(r *domain.DiscountRule) { r.Code = strPtr("") }},
		{"validTill before validFrom", func(r *domain.DiscountRule) {
			from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
			till := from.Add(-time.Hour)
			r.ValidFrom, r.ValidTill = &from, &till
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := codeRule("OK", domain.DiscountPercentage, 10)
			tc.mutate(rule)
			_, err := svc.CreateRule(ctx, rule)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateRule_DuplicateCode(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, codeRule("TEN", domain.DiscountPercentage, 10))
	require.NoError(t, err)

	_, err = svc.CreateRule(ctx, codeRule("TEN", domain.DiscountFlat, 25))
	assert.ErrorIs(t, err, ErrCodeExists)
}

func TestDeactivateRule(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.CreateRule(ctx, autoRule(domain.DiscountPercentage, 10))
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateRule(ctx, created.ID))

	// Деактивированное правило больше не подбирается auto-режимом
	b, err := svc.PriceAuto(ctx, 1000, domain.TargetTurf, domain.PricingContext{})
	require.NoError(t, err)
	assert.Empty(t, b.Applied)

	assert.ErrorIs(t, svc.DeactivateRule(ctx, 999), ErrRuleNotFound)
}
