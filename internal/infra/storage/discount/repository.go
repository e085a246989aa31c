package discount

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

// Repository репозиторий для работы с правилами скидок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория скидок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило скидки
func (r *Repository) Create(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("discount_rules").
		Columns(
			"code",
			"title",
			"discount_type",
			"value",
			"applicable_for",
			"scope_type",
			"sport_id",
			"batch_id",
			"plan_type",
			"min_slot_count",
			"valid_from",
			"valid_till",
			"is_active",
		).
		Values(
			rule.Code,
			rule.Title,
			rule.Type,
			rule.Value,
			rule.ApplicableFor,
			rule.Scope.Type,
			rule.Scope.SportID,
			rule.Scope.BatchID,
			rule.Scope.PlanType,
			rule.MinSlotCount,
			rule.ValidFrom,
			rule.ValidTill,
			rule.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByCode получает правило по коду для указанного типа транзакции
func (r *Repository) GetByCode(ctx context.Context, code string, target domain.DiscountTarget) (*domain.DiscountRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := ruleSelect().
		Where(squirrel.Eq{"code": code, "applicable_for": target}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetAutoRules получает активные auto-apply правила (code IS NULL) для
// указанного типа транзакции в детерминированном порядке (по id).
// Правила с кодом этим запросом не выбираются никогда.
func (r *Repository) GetAutoRules(ctx context.Context, target domain.DiscountTarget) ([]*domain.DiscountRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := ruleSelect().
		Where(squirrel.Eq{"code": nil, "applicable_for": target, "is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAutoRules - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRules(ctx, executor, query, args)
}

// List получает все правила скидок
func (r *Repository) List(ctx context.Context, target *domain.DiscountTarget) ([]*domain.DiscountRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := ruleSelect().OrderBy("id ASC")
	if target != nil {
		builder = builder.Where(squirrel.Eq{"applicable_for": *target})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRules(ctx, executor, query, args)
}

// Deactivate выключает правило скидки.
// Правила не удаляются физически: снимки в booking_discounts ссылаются на id.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("discount_rules").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func (r *Repository) queryRules(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.DiscountRule, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.DiscountRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: queryRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

func ruleSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"code",
		"title",
		"discount_type",
		"value",
		"applicable_for",
		"scope_type",
		"sport_id",
		"batch_id",
		"plan_type",
		"min_slot_count",
		"valid_from",
		"valid_till",
		"is_active",
		"created_at",
		"updated_at",
	).From("discount_rules")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.DiscountRule, error) {
	var rule domain.DiscountRule
	var minSlots sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.Code,
		&rule.Title,
		&rule.Type,
		&rule.Value,
		&rule.ApplicableFor,
		&rule.Scope.Type,
		&rule.Scope.SportID,
		&rule.Scope.BatchID,
		&rule.Scope.PlanType,
		&minSlots,
		&rule.ValidFrom,
		&rule.ValidTill,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if minSlots.Valid {
		v := int(minSlots.Int64)
		rule.MinSlotCount = &v
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
