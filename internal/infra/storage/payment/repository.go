package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nocta/NCB-BookingService/internal/domain"
	"github.com/nocta/NCB-BookingService/pkg/dbmetrics"
	"github.com/nocta/NCB-BookingService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"booking_id",
	"user_id",
	"amount",
	"currency",
	"stripe_payment_intent_id",
	"stripe_charge_id",
	"refund_id",
	"status",
	"created_at",
	"processed_at",
}

// Repository репозиторий журнала платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись о платеже.
// Вызывается внутри транзакции подтверждения бронирования
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payment.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"id",
			"booking_id",
			"user_id",
			"amount",
			"currency",
			"stripe_payment_intent_id",
			"stripe_charge_id",
			"status",
			"processed_at",
		).
		Values(
			payment.ID,
			payment.BookingID,
			payment.UserID,
			payment.Amount,
			payment.Currency,
			payment.StripePaymentIntentID,
			payment.StripeChargeID,
			payment.Status,
			squirrel.Expr("NOW()"),
		).
		Suffix("RETURNING created_at, processed_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.CreatedAt,
		&payment.ProcessedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return payment, nil
}

// GetByBookingID получает запись о платеже по ID бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var payment domain.Payment

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.UserID,
		&payment.Amount,
		&payment.Currency,
		&payment.StripePaymentIntentID,
		&payment.StripeChargeID,
		&payment.RefundID,
		&payment.Status,
		&payment.CreatedAt,
		&payment.ProcessedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan payment: %v", ErrScanRow, err)
	}

	return &payment, nil
}

// MarkRefunded переводит запись о платеже в refunded и запоминает ID возврата.
// Вызывается внутри транзакции отмены бронирования, после того как
// шлюз подтвердил возврат
func (r *Repository) MarkRefunded(ctx context.Context, bookingID, refundID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentRecordRefunded).
		Set("refund_id", refundID).
		Set("processed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
