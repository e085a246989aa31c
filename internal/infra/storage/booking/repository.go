package booking

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

// Repository репозиторий для работы с бронированиями аренды
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись бронирования (без занятых слотов - см. ReserveSlots).
// Вызывается внутри сериализуемой транзакции usecase создания бронирования.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"user_id",
			"facility_id",
			"sport_id",
			"rental_date",
			"base_amount",
			"total_discount",
			"final_amount",
			"payment_mode",
			"payment_status",
			"status",
			"gateway_order_id",
			"notes",
		).
		Values(
			b.Reference,
			b.UserID,
			b.FacilityID,
			b.SportID,
			b.RentalDate,
			b.Pricing.BaseAmount,
			b.Pricing.TotalDiscount,
			b.Pricing.FinalAmount,
			b.PaymentMode,
			b.PaymentStatus,
			b.Status,
			b.GatewayOrderID,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// ReserveSlots занимает слоты бронирования условной вставкой.
// Уникальный индекс booking_slots (facility_id, rental_date, start_time) плюс
// ON CONFLICT DO NOTHING превращают проверку и запись в одну атомарную
// операцию: если вставлено меньше строк, чем запрошено, значит конкурентное
// бронирование успело первым - возвращается ErrSlotTaken.
func (r *Repository) ReserveSlots(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("booking_slots").
		Columns("booking_id", "facility_id", "rental_date", "start_time", "end_time")

	for _, slot := range b.Slots {
		builder = builder.Values(b.ID, b.FacilityID, b.RentalDate, slot.StartTime, slot.EndTime)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (facility_id, rental_date, start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReserveSlots - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveSlots - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveSlots - get rows affected: %v", ErrExecQuery, err)
	}

	if inserted < int64(len(b.Slots)) {
		return ErrSlotTaken
	}

	return nil
}

// AddDiscounts сохраняет снимок применённых скидок бронирования
func (r *Repository) AddDiscounts(ctx context.Context, bookingID int64, applied []domain.AppliedDiscount) error {
	if len(applied) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("booking_discounts").
		Columns("booking_id", "rule_id", "title", "discount_type", "value", "amount", "position")

	for i, d := range applied {
		builder = builder.Values(bookingID, d.RuleID, d.Title, d.Type, d.Value, d.Amount, i)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddDiscounts - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddDiscounts - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование со слотами и снимком скидок
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := bookingSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadSlots(ctx, executor, []*domain.Booking{b}); err != nil {
		return nil, err
	}
	if err := r.loadDiscounts(ctx, executor, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetByFacilityWithFilter получает бронирования площадки с фильтрацией
// по периоду и статусу. Отменённые бронирования по умолчанию исключаются.
//
// Внутри транзакции при выборке на конкретную дату добавляется FOR UPDATE:
// используется usecase создания бронирования для блокировки конкурентов.
func (r *Repository) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := bookingSelect().
		Where(squirrel.Eq{"facility_id": filter.FacilityID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"rental_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"rental_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("rental_date DESC, id DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFacilityWithFilter - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadSlots(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// CountActiveBySlotTime считает активные бронирования, занимающие слот
// с указанным временем начала, начиная с даты fromDate.
// Используется проверкой SlotInUse при удалении шаблонного слота.
func (r *Repository) CountActiveBySlotTime(ctx context.Context, facilityID int64, startTime types.TimeString, fromDate time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("booking_slots bs").
		Join("bookings b ON b.id = bs.booking_id").
		Where(squirrel.Eq{"bs.facility_id": facilityID, "bs.start_time": startTime}).
		Where(squirrel.GtOrEq{"bs.rental_date": fromDate}).
		Where(squirrel.NotEq{"b.status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlotTime - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlotTime - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ReleaseSlots освобождает слоты бронирования.
// Вызывается при отмене: освобождённые времена снова доступны для аренды.
func (r *Repository) ReleaseSlots(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseSlots - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// ConfirmPayment переводит бронирование pending → confirmed после
// подтверждённой оплаты. Условие status = pending делает операцию
// идемпотентно-безопасной: повторное подтверждение вернет ErrNotPending.
func (r *Repository) ConfirmPayment(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_status", domain.PaymentPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrBookingNotFound
		}
		return ErrNotPending
	}

	return nil
}

func bookingSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"reference",
		"user_id",
		"facility_id",
		"sport_id",
		"rental_date",
		"base_amount",
		"total_discount",
		"final_amount",
		"payment_mode",
		"payment_status",
		"status",
		"gateway_order_id",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("bookings")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.UserID,
		&b.FacilityID,
		&b.SportID,
		&b.RentalDate,
		&b.Pricing.BaseAmount,
		&b.Pricing.TotalDiscount,
		&b.Pricing.FinalAmount,
		&b.PaymentMode,
		&b.PaymentStatus,
		&b.Status,
		&b.GatewayOrderID,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func (r *Repository) loadSlots(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select("booking_id", "start_time", "end_time").
		From("booking_slots").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var slot domain.BookedSlot
		if err := rows.Scan(&bookingID, &slot.StartTime, &slot.EndTime); err != nil {
			return fmt.Errorf("%w: loadSlots - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Slots = append(b.Slots, slot)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSlots - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadDiscounts(ctx context.Context, executor DBExecutor, b *domain.Booking) error {
	query, args, err := psqlbuilder.Select("rule_id", "title", "discount_type", "value", "amount").
		From("booking_discounts").
		Where(squirrel.Eq{"booking_id": b.ID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadDiscounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadDiscounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.AppliedDiscount
		if err := rows.Scan(&d.RuleID, &d.Title, &d.Type, &d.Value, &d.Amount); err != nil {
			return fmt.Errorf("%w: loadDiscounts - scan row: %v", ErrScanRow, err)
		}
		b.Pricing.Applied = append(b.Pricing.Applied, d)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadDiscounts - rows error: %v", ErrScanRow, err)
	}

	return nil
}
