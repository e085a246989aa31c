package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	discountRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/discount"
)

// Service discount engine: отбор применимых правил и расчёт цены.
// Расчёт - чистая функция без побочных эффектов (см. Price), блокировки
// не требуются.
type Service struct {
	repo         DiscountRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса ценообразования
func NewService(repo DiscountRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// PriceWithCodes рассчитывает цену с явными кодами скидок.
// Правила применяются строго в порядке, указанном вызывающим.
// Auto-правила (code = NULL) в этом режиме не участвуют.
func (s *Service) PriceWithCodes(ctx context.Context, baseAmount float64, target domain.DiscountTarget, pctx domain.PricingContext, codes []string) (*domain.PriceBreakdown, error) {
	rules, err := s.selectByCodes(ctx, codes, target, pctx)
	if err != nil {
		return nil, err
	}

	breakdown := Price(baseAmount, rules)
	s.logger.Info("PriceWithCodes: base=%.2f, codes=[%s], final=%.2f",
		baseAmount, strings.Join(codes, ","), breakdown.FinalAmount)

	return &breakdown, nil
}

// PriceAuto рассчитывает цену с автоматическим отбором правил.
// Выбираются только правила без кода, применимые к контексту,
// в стабильном порядке по возрастанию id.
func (s *Service) PriceAuto(ctx context.Context, baseAmount float64, target domain.DiscountTarget, pctx domain.PricingContext) (*domain.PriceBreakdown, error) {
	now := s.timeProvider.Now()

	candidates, err := s.repo.GetAutoRules(ctx, target)
	if err != nil {
		s.logger.Error("PriceAuto: failed to load auto rules: %v", err)
		return nil, fmt.Errorf("%w: PriceAuto - repository error: %v", ErrInternal, err)
	}

	rules := make([]*domain.DiscountRule, 0, len(candidates))
	for _, rule := range candidates {
		if rule.AppliesTo(target, pctx, now) {
			rules = append(rules, rule)
		}
	}

	breakdown := Price(baseAmount, rules)
	s.logger.Info("PriceAuto: base=%.2f, rules=%d of %d candidates, final=%.2f",
		baseAmount, len(rules), len(candidates), breakdown.FinalAmount)

	return &breakdown, nil
}

// Preview чистый расчёт цены без какой-либо персистентности.
// С кодами - режим явных кодов, без кодов - автоматический режим.
func (s *Service) Preview(ctx context.Context, baseAmount float64, target domain.DiscountTarget, pctx domain.PricingContext, codes []string) (*domain.PriceBreakdown, error) {
	if baseAmount < 0 {
		return nil, fmt.Errorf("%w: baseAmount must be non-negative", ErrInvalidInput)
	}

	if len(codes) > 0 {
		return s.PriceWithCodes(ctx, baseAmount, target, pctx, codes)
	}
	return s.PriceAuto(ctx, baseAmount, target, pctx)
}

// CreateRule создает новое правило скидки
func (s *Service) CreateRule(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error) {
	if err := validateRule(rule); err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, rule)
	if err != nil {
		if errors.Is(err, discountRepo.ErrDuplicateCode) {
			s.logger.Warn("CreateRule: code already exists")
			return nil, ErrCodeExists
		}
		s.logger.Error("CreateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: created rule id=%d, title=%q", created.ID, created.Title)
	return created, nil
}

// ListRules возвращает правила скидок, опционально по типу транзакции
func (s *Service) ListRules(ctx context.Context, target *domain.DiscountTarget) ([]*domain.DiscountRule, error) {
	rules, err := s.repo.List(ctx, target)
	if err != nil {
		s.logger.Error("ListRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}
	return rules, nil
}

// DeactivateRule выключает правило скидки
func (s *Service) DeactivateRule(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, discountRepo.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		s.logger.Error("DeactivateRule: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeactivateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateRule: deactivated rule id=%d", id)
	return nil
}

// selectByCodes загружает правила по кодам с сохранением порядка вызова
func (s *Service) selectByCodes(ctx context.Context, codes []string, target domain.DiscountTarget, pctx domain.PricingContext) ([]*domain.DiscountRule, error) {
	now := s.timeProvider.Now()

	seen := make(map[string]struct{}, len(codes))
	rules := make([]*domain.DiscountRule, 0, len(codes))

	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fmt.Errorf("%w: empty discount code", ErrInvalidInput)
		}
		if _, ok := seen[code]; ok {
			return nil, &CodeError{Code: code, Err: ErrDuplicateCode}
		}
		seen[code] = struct{}{}

		rule, err := s.repo.GetByCode(ctx, code, target)
		if err != nil {
			if errors.Is(err, discountRepo.ErrRuleNotFound) {
				return nil, &CodeError{Code: code, Err: ErrCodeNotFound}
			}
			s.logger.Error("selectByCodes: repository error for code=%q: %v", code, err)
			return nil, fmt.Errorf("%w: selectByCodes - repository error: %v", ErrInternal, err)
		}

		if !rule.AppliesTo(target, pctx, now) {
			return nil, &CodeError{Code: code, Err: ErrCodeNotApplicable}
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func validateRule(rule *domain.DiscountRule) error {
	if rule.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if rule.Value <= 0 {
		return fmt.Errorf("%w: value must be positive", ErrInvalidInput)
	}

	switch rule.Type {
	case domain.DiscountFlat:
	case domain.DiscountPercentage:
		if rule.Value > 100 {
			return fmt.Errorf("%w: percentage value must not exceed 100", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, rule.Type)
	}

	switch rule.ApplicableFor {
	case domain.TargetEnrollment, domain.TargetTurf:
	default:
		return fmt.Errorf("%w: unknown target %q", ErrInvalidInput, rule.ApplicableFor)
	}

	switch rule.Scope.Type {
	case domain.ScopeGlobal:
	case domain.ScopeSport:
		if rule.Scope.SportID == nil {
			return fmt.Errorf("%w: sport scope requires sportId", ErrInvalidInput)
		}
	case domain.ScopeBatch:
		if rule.Scope.BatchID == nil {
			return fmt.Errorf("%w: batch scope requires batchId", ErrInvalidInput)
		}
	case domain.ScopePlan:
		if rule.Scope.PlanType == nil {
			return fmt.Errorf("%w: plan scope requires planType", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown scope type %q", ErrInvalidInput, rule.Scope.Type)
	}

	if rule.Code != nil && strings.TrimSpace(*rule.Code) == "" {
		return fmt.Errorf("%w: code must be non-empty or null", ErrInvalidInput)
	}
	if rule.ValidFrom != nil && rule.ValidTill != nil && rule.ValidTill.Before(*rule.ValidFrom) {
		return fmt.Errorf("%w: validTill is before validFrom", ErrInvalidInput)
	}

	return nil
}
