package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/nocta/NCB-BookingService/internal/domain"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
	paymentRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/payment"
	"github.com/nocta/NCB-BookingService/internal/integrations/stripegw"
)

// UseCase use case отмены бронирования с возвратом средств
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	gateway      PaymentGateway
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		gateway:      gateway,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Для оплаченных бронирований возврат средств выполняется ДО изменения
// локального состояния: если шлюз отказал, бронирование остается как было.
// Изменение статуса и отметка в журнале платежей выполняются затем
// в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%s, user=%s", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Отменить можно только свое бронирование
	if booking.UserID != req.UserID {
		uc.logger.Warn("CancelBooking: user=%s is not the owner of booking=%s", req.UserID, req.BookingID)
		return nil, ErrForbidden
	}

	// 4. Проверяем статус
	if booking.IsCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%s already cancelled", req.BookingID)
		return nil, ErrAlreadyCancelled
	}
	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%s has status %s", req.BookingID, booking.Status)
		return nil, ErrNotCancellable
	}

	// 5. Прошедший слот отменить нельзя
	now := uc.timeProvider.Now()
	slotAt, err := booking.SlotDateTime()
	if err != nil {
		uc.logger.Error("CancelBooking: failed to compute slot time for booking=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to compute slot time: %v", ErrInternal, err)
	}
	if slotAt.Before(now) {
		uc.logger.Warn("CancelBooking: booking id=%s slot %s is in the past", booking.ID, slotAt)
		return nil, ErrPastBooking
	}

	// 6. Для оплаченных бронирований сначала полный возврат средств.
	// Пока шлюз не подтвердил возврат, локальное состояние не меняется
	var refund *stripegw.Refund
	if booking.IsPaid() {
		refund, err = uc.gateway.Refund(ctx, booking.PaymentIntentID, nil)
		if err != nil {
			uc.logger.Error("CancelBooking: refund failed for booking=%s, intent=%s: %v",
				booking.ID, booking.PaymentIntentID, err)
			return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
		}
		uc.logger.Info("CancelBooking: refund id=%s completed for booking=%s", refund.ID, booking.ID)
	}

	finalPaymentStatus := booking.PaymentStatus
	if refund != nil {
		finalPaymentStatus = domain.PaymentRefunded
	}

	// 7. Фиксируем отмену атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Перечитываем под блокировкой
		current, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, err)
		}

		if current.IsCancelled() {
			return ErrAlreadyCancelled
		}
		if !current.CanBeCancelled() {
			return ErrNotCancellable
		}

		// Оплата прошла между нашей проверкой и возвратом - отменять без
		// возврата нельзя
		if current.IsPaid() && refund == nil {
			return fmt.Errorf("%w: payment completed during cancellation", ErrInternal)
		}

		// 7.2. Переводим бронирование в cancelled
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, finalPaymentStatus); err != nil {
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 7.3. Отмечаем возврат в журнале платежей
		if refund != nil {
			if err := uc.paymentRepo.MarkRefunded(txCtx, booking.ID, refund.ID); err != nil {
				// Записи может не быть для бронирований, оплаченных до
				// ввода журнала
				if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
					return fmt.Errorf("%w: failed to mark payment refunded: %v", ErrInternal, err)
				}
				uc.logger.Warn("CancelBooking: no payment record for booking=%s", booking.ID)
			}
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrAlreadyCancelled) && !errors.Is(err, ErrNotCancellable) {
			uc.logger.Error("CancelBooking: transaction failed for booking=%s: %v", booking.ID, err)
		}
		return nil, err
	}

	cancelledAt := uc.timeProvider.Now()

	uc.logger.Info("CancelBooking: booking id=%s cancelled (refunded=%t)", booking.ID, refund != nil)

	return &Response{
		ID:            booking.ID,
		UserID:        booking.UserID,
		TableID:       booking.TableID,
		VenueID:       booking.VenueID,
		Date:          booking.BookingDate,
		Time:          booking.BookingTime,
		GuestCount:    booking.GuestCount,
		TotalAmount:   booking.TotalAmount,
		Status:        string(domain.StatusCancelled),
		PaymentStatus: string(finalPaymentStatus),
		Refunded:      refund != nil,
		CancelledAt:   &cancelledAt,
	}, nil
}
