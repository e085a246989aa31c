package slottemplate

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

// Repository репозиторий для работы с шаблонными слотами площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонных слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает набор слотов одной площадки.
// Проверка пересечений выполняется на уровне сервиса до вставки.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TemplateSlot) ([]*domain.TemplateSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("template_slots").
		Columns("facility_id", "start_time", "end_time", "label", "is_active")

	for _, slot := range slots {
		builder = builder.Values(slot.FacilityID, slot.StartTime, slot.EndTime, slot.Label, slot.IsActive)
	}

	query, args, err := builder.
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&slots[i].ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan row: %v", ErrScanRow, err)
		}
		slots[i].CreatedAt = createdAt.Time
		slots[i].UpdatedAt = updatedAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает шаблонный слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TemplateSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := slotSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByFacility получает слоты площадки, упорядоченные по времени начала.
// При onlyActive=true возвращает только активные (не занятые группами) слоты.
func (r *Repository) GetByFacility(ctx context.Context, facilityID int64, onlyActive bool) ([]*domain.TemplateSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := slotSelect().
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("start_time ASC")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacility - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacility - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TemplateSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFacility - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFacility - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Update обновляет время и подпись слота
func (r *Repository) Update(ctx context.Context, slot *domain.TemplateSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("template_slots").
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("label", slot.Label).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID, "facility_id": slot.FacilityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет шаблонный слот.
// Проверка, что слот не занят бронированиями или группой, выполняется сервисом.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("template_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// AcquireLock захватывает слот для тренировочной группы условным обновлением.
// Предусловие is_active = TRUE гарантирует, что из двух конкурентных вызовов
// обновление выполнит ровно один; проигравший получает ErrSlotLocked.
func (r *Repository) AcquireLock(ctx context.Context, facilityID, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("template_slots").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID, "facility_id": facilityID, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AcquireLock - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AcquireLock - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AcquireLock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо слота нет, либо он уже захвачен - различаем для вызывающего
		if _, err := r.GetByID(ctx, slotID); err != nil {
			return ErrSlotNotFound
		}
		return ErrSlotLocked
	}

	return nil
}

// ReleaseLock освобождает слот. Операция идемпотентна: повторное
// освобождение уже активного слота не является ошибкой.
func (r *Repository) ReleaseLock(ctx context.Context, facilityID, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("template_slots").
		Set("is_active", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID, "facility_id": facilityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleaseLock - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseLock - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func slotSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"facility_id",
		"start_time",
		"end_time",
		"label",
		"is_active",
		"created_at",
		"updated_at",
	).From("template_slots")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TemplateSlot, error) {
	var slot domain.TemplateSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.FacilityID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Label,
		&slot.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
