package blockeddates

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// Repository репозиторий для работы с блокировками слотов по датам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertEntry возвращает id записи для (facility, date), создавая её при необходимости.
// Уникальный индекс по (facility_id, block_date) гарантирует одну запись на дату.
func (r *Repository) UpsertEntry(ctx context.Context, facilityID int64, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_date_entries").
		Columns("facility_id", "block_date").
		Values(facilityID, date).
		Suffix("ON CONFLICT (facility_id, block_date) DO UPDATE SET updated_at = NOW() RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpsertEntry - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: UpsertEntry - execute insert: %v", ErrExecQuery, err)
	}

	return id, nil
}

// AddSlots добавляет заблокированные слоты к записи (set-семантика:
// повторная блокировка того же времени не создает дубликат)
func (r *Repository) AddSlots(ctx context.Context, entryID int64, slots []domain.BlockedSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("blocked_slots").
		Columns("entry_id", "start_time", "reason")

	for _, slot := range slots {
		builder = builder.Values(entryID, slot.StartTime, slot.Reason)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (entry_id, start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByFacilityAndDate получает запись блокировки с её слотами
func (r *Repository) GetByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) (*domain.BlockedDateEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := entrySelect().
		Where(squirrel.Eq{"facility_id": facilityID, "block_date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.fetchEntry(ctx, executor, query, args)
}

// GetByID получает запись блокировки по ID
func (r *Repository) GetByID(ctx context.Context, entryID int64) (*domain.BlockedDateEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := entrySelect().
		Where(squirrel.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.fetchEntry(ctx, executor, query, args)
}

// RemoveSlot удаляет один заблокированный слот из записи
func (r *Repository) RemoveSlot(ctx context.Context, entryID int64, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"entry_id": entryID, "start_time": startTime}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// CountSlots возвращает количество заблокированных слотов в записи
func (r *Repository) CountSlots(ctx context.Context, entryID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("blocked_slots").
		Where(squirrel.Eq{"entry_id": entryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountSlots - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSlots - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DeleteEntry удаляет запись блокировки целиком (слоты удаляются каскадно)
func (r *Repository) DeleteEntry(ctx context.Context, entryID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_date_entries").
		Where(squirrel.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteEntry - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteEntry - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteEntry - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func entrySelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"facility_id",
		"block_date",
		"created_at",
		"updated_at",
	).From("blocked_date_entries")
}

func (r *Repository) fetchEntry(ctx context.Context, executor DBExecutor, query string, args []interface{}) (*domain.BlockedDateEntry, error) {
	var entry domain.BlockedDateEntry
	var createdAt, updatedAt sql.NullTime

	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.FacilityID,
		&entry.Date,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetchEntry - scan entry: %v", ErrScanRow, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	slots, err := r.loadSlots(ctx, executor, entry.ID)
	if err != nil {
		return nil, err
	}
	entry.Slots = slots

	return &entry, nil
}

func (r *Repository) loadSlots(ctx context.Context, executor DBExecutor, entryID int64) ([]domain.BlockedSlot, error) {
	query, args, err := psqlbuilder.Select("start_time", "reason").
		From("blocked_slots").
		Where(squirrel.Eq{"entry_id": entryID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.BlockedSlot, 0)
	for rows.Next() {
		var slot domain.BlockedSlot
		if err := rows.Scan(&slot.StartTime, &slot.Reason); err != nil {
			return nil, fmt.Errorf("%w: loadSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
