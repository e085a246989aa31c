package batch

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

// Repository репозиторий для работы с тренировочными группами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория групп
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую группу
func (r *Repository) Create(ctx context.Context, b *domain.Batch) (*domain.Batch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("batches").
		Columns("facility_id", "slot_id", "name", "schedule", "capacity", "enrolled_count", "level", "start_date", "end_date").
		Values(b.FacilityID, b.SlotID, b.Name, b.Schedule, b.Capacity, b.EnrolledCount, b.Level, b.StartDate, b.EndDate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает группу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Batch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := batchSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBatch(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan batch: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetBySlotID получает группу, удерживающую указанный слот
func (r *Repository) GetBySlotID(ctx context.Context, slotID int64) (*domain.Batch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := batchSelect().
		Where(squirrel.Eq{"slot_id": slotID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBatch(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotID - scan batch: %v", ErrScanRow, err)
	}

	return b, nil
}

// UpdateSlotID закрепляет слот за группой (или снимает закрепление при nil).
// Уникальный индекс batches(slot_id) не даст двум группам держать один слот.
func (r *Repository) UpdateSlotID(ctx context.Context, batchID int64, slotID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("batches").
		Set("slot_id", slotID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": batchID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateSlotID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotID - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBatchNotFound
	}

	return nil
}

// Delete удаляет группу
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("batches").
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
		return ErrBatchNotFound
	}

	return nil
}

func batchSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"facility_id",
		"slot_id",
		"name",
		"schedule",
		"capacity",
		"enrolled_count",
		"level",
		"start_date",
		"end_date",
		"created_at",
		"updated_at",
	).From("batches")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBatch(row rowScanner) (*domain.Batch, error) {
	var b domain.Batch
	var slotID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.FacilityID,
		&slotID,
		&b.Name,
		&b.Schedule,
		&b.Capacity,
		&b.EnrolledCount,
		&b.Level,
		&b.StartDate,
		&b.EndDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if slotID.Valid {
		b.SlotID = &slotID.Int64
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
