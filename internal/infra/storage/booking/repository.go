package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const (
	bookingsTable = "bookings"
	slotsTable    = "booking_slots"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"court_id",
	"booking_date",
	"start_time",
	"end_time",
	"total_amount",
	"status",
	"payment_status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со слотами.
// Вызывать внутри транзакции (txmanager), иначе бронирование и слоты пишутся независимо.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"user_id",
			"court_id",
			"booking_date",
			"start_time",
			"end_time",
			"total_amount",
			"status",
			"payment_status",
			"notes",
		).
		Values(
			booking.UserID,
			booking.CourtID,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			booking.TotalAmount,
			string(booking.Status),
			string(booking.PaymentStatus),
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.insertSlots(ctx, executor, booking.ID, booking.Slots); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе со слотами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id})

	// При редактировании блокируем строку до конца транзакции
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	if err := r.attachSlots(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC", "start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "GetByUserID", query, args)
}

// GetByCourtWithFilter получает бронирования корта с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (StartDate, EndDate) - опционально
// - Статусу (Status) и статусу оплаты (PaymentStatus) - опционально
// - Включению неактивных бронирований (IncludeInactive)
// - Исключению одного бронирования (ExcludeBookingID) - при редактировании
//
// Внутри транзакции для одной даты строки блокируются (FOR UPDATE),
// это используется при проверке занятости слотов.
func (r *Repository) GetByCourtWithFilter(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(bookingColumns...).From(bookingsTable), filter)

	if dbmetrics.IsInTransaction(ctx) && filter.IsSingleDate() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "GetByCourtWithFilter", query, args)
}

// applyFilter добавляет условия и сортировку фильтра к запросу
func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.CourtBookingsFilter) squirrel.SelectBuilder {
	selectBuilder = selectBuilder.Where(squirrel.Eq{"court_id": filter.CourtID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.PaymentStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"payment_status": string(*filter.PaymentStatus)})
	}

	if filter.ExcludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeBookingID})
	}

	return selectBuilder.OrderBy(orderBy(filter)...)
}

func orderBy(filter domain.CourtBookingsFilter) []string {
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	switch filter.SortBy {
	case domain.SortByTotalAmount:
		return []string{"total_amount " + dir, "id " + dir}
	case domain.SortByCreatedAt:
		return []string{"created_at " + dir, "id " + dir}
	case domain.SortByBookingDate:
		return []string{"booking_date " + dir, "start_time " + dir}
	}

	// Для конкретной даты сортируем по времени начала, для периода сначала новые
	if filter.IsSingleDate() {
		return []string{"start_time ASC"}
	}
	return []string{"booking_date DESC", "start_time DESC"}
}

// ReplaceSlots сохраняет отредактированную дату, слоты и итоговую сумму бронирования
func (r *Repository) ReplaceSlots(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("booking_date", booking.Date).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("total_amount", booking.TotalAmount).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceSlots - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: ReplaceSlots - execute update: %w", ErrExecQuery, err)
	}
	booking.UpdatedAt = updatedAt.Time

	deleteQuery, deleteArgs, err := psqlbuilder.Delete(slotsTable).
		Where(squirrel.Eq{"booking_id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSlots - delete slots: %w", ErrExecQuery, err)
	}

	return r.insertSlots(ctx, executor, booking.ID, booking.Slots)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": string(status),
	})
}

// UpdatePaymentStatus обновляет статус оплаты (выставляется администратором)
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.update(ctx, "UpdatePaymentStatus", id, map[string]interface{}{
		"payment_status": string(status),
	})
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	return r.update(ctx, "Cancel", id, map[string]interface{}{
		"status":              string(status),
		"cancellation_reason": reason,
		"cancelled_at":        squirrel.Expr("NOW()"),
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, bookingID int64, slots []domain.BookingSlot) error {
	if len(slots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(slotsTable).
		Columns("booking_id", "position", "slot_from", "slot_to", "price")
	for i, s := range slots {
		insertBuilder = insertBuilder.Values(bookingID, i, s.Interval.From, s.Interval.To, s.Price)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertSlots - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) queryBookings(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}
	rows.Close()

	if err := r.attachSlots(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// attachSlots загружает слоты одним запросом для всех бронирований
func (r *Repository) attachSlots(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query, args, err := psqlbuilder.Select("booking_id", "slot_from", "slot_to", "price").
		From(slotsTable).
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC", "position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID int64
			slot      domain.BookingSlot
		)
		if err := rows.Scan(&bookingID, &slot.Interval.From, &slot.Interval.To, &slot.Price); err != nil {
			return fmt.Errorf("%w: attachSlots - scan row: %w", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Slots = append(b.Slots, slot)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachSlots - rows error: %w", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		courtID              uuid.UUID
		status, payment      string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&courtID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.TotalAmount,
		&status,
		&payment,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CourtID = courtID
	booking.Status = domain.BookingStatus(status)
	booking.PaymentStatus = domain.PaymentStatus(payment)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
