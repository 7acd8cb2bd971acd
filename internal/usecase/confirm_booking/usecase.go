package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/nocta/NCB-BookingService/internal/domain"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
	"github.com/nocta/NCB-BookingService/internal/integrations/stripegw"
	"github.com/nocta/NCB-BookingService/internal/tickets"
	"github.com/nocta/NCB-BookingService/pkg/ptr"
)

// UseCase use case подтверждения бронирования после оплаты
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	gateway     PaymentGateway
	txManager   TransactionManager
	currency    string
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		txManager:   txManager,
		currency:    currency,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения бронирования.
// Статус оплаты проверяется у шлюза вне транзакции; выдача билета и запись
// в журнал платежей выполняются в сериализуемой транзакции. Условное
// обновление в ConfirmWithTicket гарантирует, что билет выдается
// ровно один раз даже при конкурентных подтверждениях.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%s, user=%s", req.BookingID, req.UserID)

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
			uc.logger.Warn("ConfirmBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Подтвердить можно только свое бронирование
	if booking.UserID != req.UserID {
		uc.logger.Warn("ConfirmBooking: user=%s is not the owner of booking=%s", req.UserID, req.BookingID)
		return nil, ErrForbidden
	}

	// 4. Проверяем статус
	switch booking.Status {
	case domain.StatusPending:
		// продолжаем
	case domain.StatusConfirmed:
		uc.logger.Warn("ConfirmBooking: booking id=%s already confirmed", req.BookingID)
		return nil, ErrAlreadyConfirmed
	default:
		uc.logger.Warn("ConfirmBooking: booking id=%s has status %s", req.BookingID, booking.Status)
		return nil, ErrNotPending
	}

	// 5. Проверяем оплату у шлюза (вне транзакции)
	intent, err := uc.gateway.RetrieveIntent(ctx, booking.PaymentIntentID)
	if err != nil {
		if errors.Is(err, stripegw.ErrGatewayUnavailable) {
			uc.logger.Error("ConfirmBooking: payment gateway unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
		}
		uc.logger.Error("ConfirmBooking: failed to retrieve intent id=%s: %v", booking.PaymentIntentID, err)
		return nil, fmt.Errorf("%w: failed to retrieve payment intent: %v", ErrInternal, err)
	}

	switch intent.Status {
	case stripegw.IntentSucceeded:
		// продолжаем
	case stripegw.IntentCanceled, stripegw.IntentFailed:
		uc.logger.Warn("ConfirmBooking: intent id=%s is %s", intent.ID, intent.Status)
		if err := uc.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentFailed); err != nil {
			uc.logger.Error("ConfirmBooking: failed to mark payment failed for booking=%s: %v", booking.ID, err)
		}
		return nil, ErrPaymentFailed
	default:
		uc.logger.Warn("ConfirmBooking: intent id=%s not succeeded yet (status=%s)", intent.ID, intent.Status)
		return nil, ErrPaymentIncomplete
	}

	// 6. Генерируем код билета до входа в транзакцию
	ticketCode, err := tickets.NewCode()
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to generate ticket code: %v", err)
		return nil, fmt.Errorf("%w: failed to generate ticket code: %v", ErrInternal, err)
	}

	// 7. Выдаем билет и пишем журнал платежей атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Условное подтверждение: status = pending AND ticket_code IS NULL
		if err := uc.bookingRepo.ConfirmWithTicket(txCtx, booking.ID, ticketCode); err != nil {
			if errors.Is(err, bookingRepo.ErrNotConfirmable) {
				// Конкурентное подтверждение или отмена успели раньше
				current, getErr := uc.bookingRepo.GetByID(txCtx, booking.ID)
				if getErr != nil {
					return fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, getErr)
				}
				if current.Status == domain.StatusConfirmed {
					return ErrAlreadyConfirmed
				}
				return ErrNotPending
			}
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		// 7.2. Запись в журнал платежей
		payment := &domain.Payment{
			BookingID:             booking.ID,
			UserID:                booking.UserID,
			Amount:                booking.TotalAmount,
			Currency:              uc.currency,
			StripePaymentIntentID: intent.ID,
			Status:                domain.PaymentRecordSucceeded,
		}
		if intent.LatestCharge != "" {
			payment.StripeChargeID = ptr.Ptr(intent.LatestCharge)
		}

		if _, err := uc.paymentRepo.Create(txCtx, payment); err != nil {
			return fmt.Errorf("%w: failed to record payment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrAlreadyConfirmed) && !errors.Is(err, ErrNotPending) {
			uc.logger.Error("ConfirmBooking: transaction failed for booking=%s: %v", booking.ID, err)
		}
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: booking id=%s confirmed, ticket issued", booking.ID)

	return &Response{
		ID:            booking.ID,
		UserID:        booking.UserID,
		TableID:       booking.TableID,
		VenueID:       booking.VenueID,
		Date:          booking.BookingDate,
		Time:          booking.BookingTime,
		GuestCount:    booking.GuestCount,
		TablePrice:    booking.TablePrice,
		PlatformFee:   booking.PlatformFee,
		TotalAmount:   booking.TotalAmount,
		Status:        string(domain.StatusConfirmed),
		PaymentStatus: string(domain.PaymentPaid),
		TicketCode:    ticketCode,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}, nil
}
