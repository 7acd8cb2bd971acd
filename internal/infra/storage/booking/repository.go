package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nocta/NCB-BookingService/internal/domain"
	"github.com/nocta/NCB-BookingService/pkg/dbmetrics"
	"github.com/nocta/NCB-BookingService/pkg/psqlbuilder"
	"github.com/nocta/NCB-BookingService/pkg/types"
)

const (
	uniqActiveSlotConstraint = "uniq_active_slot"
	uniqViolationCode        = "23505"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"table_id",
	"venue_id",
	"booking_date",
	"booking_time",
	"guest_count",
	"table_price",
	"platform_fee",
	"total_amount",
	"status",
	"payment_status",
	"payment_intent_id",
	"ticket_code",
	"special_requests",
	"checked_in",
	"checked_in_at",
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

// Create создает новое бронирование со статусом pending.
// Частичный уникальный индекс uniq_active_slot гарантирует, что на один слот
// (table_id, booking_date, booking_time) есть не более одного активного
// бронирования. Нарушение индекса транслируется в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"table_id",
			"venue_id",
			"booking_date",
			"booking_time",
			"guest_count",
			"table_price",
			"platform_fee",
			"total_amount",
			"status",
			"payment_status",
			"payment_intent_id",
			"special_requests",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.TableID,
			booking.VenueID,
			booking.BookingDate,
			booking.BookingTime,
			booking.GuestCount,
			booking.TablePrice,
			booking.PlatformFee,
			booking.TotalAmount,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentIntentID,
			booking.SpecialRequests,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции добавляет FOR UPDATE, чтобы удержать строку
// до конца подтверждения или отмены.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByTicketCode получает бронирование по коду билета
func (r *Repository) GetByTicketCode(ctx context.Context, ticketCode string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"ticket_code": ticketCode}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTicketCode - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByTicketCode")
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, booking_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByVenueWithFilter получает бронирования заведения с фильтрацией
// по дате и статусу. По умолчанию отмененные бронирования исключаются.
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if filter.Date != nil {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("booking_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, booking_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveBySlot возвращает число активных бронирований на слот.
// Используется как предварительная проверка доступности: окончательную
// гарантию дает уникальный индекс при вставке.
func (r *Repository) CountActiveBySlot(ctx context.Context, tableID string, date time.Time, timeSlot types.TimeString) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"table_id": tableID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"booking_time": timeSlot}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ConfirmWithTicket переводит бронирование в confirmed/paid и записывает код
// билета одним условным обновлением. Условие status = pending AND ticket_code
// IS NULL гарантирует, что билет выдается ровно один раз: повторное
// подтверждение не затронет ни одной строки и вернет ErrNotConfirmable.
func (r *Repository) ConfirmWithTicket(ctx context.Context, id, ticketCode string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_status", domain.PaymentPaid).
		Set("ticket_code", ticketCode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where("ticket_code IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConfirmWithTicket - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConfirmWithTicket - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConfirmWithTicket - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotConfirmable
	}

	return nil
}

// Cancel переводит бронирование в cancelled и фиксирует итоговый
// платежный статус (refunded после возврата, pending если оплаты не было)
func (r *Repository) Cancel(ctx context.Context, id string, paymentStatus domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("payment_status", paymentStatus).
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

// UpdatePaymentStatus обновляет только платежный статус бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", paymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CheckIn атомарно отмечает вход по билету.
// Условие checked_in = FALSE делает операцию compare-and-set: при
// конкурентных сканированиях одного билета ровно один запрос обновит
// строку, остальные получат ErrAlreadyCheckedIn.
func (r *Repository) CheckIn(ctx context.Context, id string) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("checked_in", true).
		Set("checked_in_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"checked_in": false}).
		Suffix("RETURNING checked_in_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: CheckIn - build update query: %v", ErrBuildQuery, err)
	}

	var checkedInAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&checkedInAt)

	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrAlreadyCheckedIn
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: CheckIn - execute update: %v", ErrExecQuery, err)
	}

	return checkedInAt, nil
}

// isSlotConflict проверяет, что ошибка БД - нарушение уникального индекса
// активного слота
func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqViolationCode && pqErr.Constraint == uniqActiveSlotConstraint
}

// scanBooking сканирует одну строку результата в бронирование
func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.TableID,
		&booking.VenueID,
		&booking.BookingDate,
		&booking.BookingTime,
		&booking.GuestCount,
		&booking.TablePrice,
		&booking.PlatformFee,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentIntentID,
		&booking.TicketCode,
		&booking.SpecialRequests,
		&booking.CheckedIn,
		&booking.CheckedInAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.TableID,
			&booking.VenueID,
			&booking.BookingDate,
			&booking.BookingTime,
			&booking.GuestCount,
			&booking.TablePrice,
			&booking.PlatformFee,
			&booking.TotalAmount,
			&booking.Status,
			&booking.PaymentStatus,
			&booking.PaymentIntentID,
			&booking.TicketCode,
			&booking.SpecialRequests,
			&booking.CheckedIn,
			&booking.CheckedInAt,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
