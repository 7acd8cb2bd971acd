package verify_checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
)

// UseCase use case проверки билета на входе
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет проверку билета.
// Отметка входа - условное обновление checked_in FALSE -> TRUE: при
// конкурентных сканированиях одного билета ровно один сканер получает
// Success=true, остальные - исход "Already checked in"
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.TicketCode == "" {
		return nil, fmt.Errorf("%w: ticketCode is required", ErrInvalidInput)
	}

	// 2. Ищем бронирование по коду билета
	booking, err := uc.bookingRepo.GetByTicketCode(ctx, req.TicketCode)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("VerifyCheckIn: unknown ticket code presented")
			return nil, ErrInvalidTicket
		}
		uc.logger.Error("VerifyCheckIn: failed to look up ticket: %v", err)
		return nil, fmt.Errorf("%w: failed to look up ticket: %v", ErrInternal, err)
	}

	// 3. Вход возможен только по подтвержденному бронированию
	if booking.Status != domain.StatusConfirmed {
		uc.logger.Warn("VerifyCheckIn: booking id=%s has status %s", booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: booking status is %s", ErrNotConfirmed, booking.Status)
	}

	info := BookingInfo{
		ID:         booking.ID,
		TableID:    booking.TableID,
		VenueID:    booking.VenueID,
		Date:       booking.BookingDate,
		Time:       booking.BookingTime,
		GuestCount: booking.GuestCount,
	}

	// 4. Повторное сканирование - отдельный исход, не ошибка
	if booking.CheckedIn {
		uc.logger.Info("VerifyCheckIn: booking id=%s already checked in at %s",
			booking.ID, checkedInAtOrZero(booking))
		return &Response{
			Success:     false,
			Message:     MsgAlreadyCheckedIn,
			CheckedInAt: checkedInAtOrZero(booking),
			Booking:     info,
		}, nil
	}

	// 5. Атомарная отметка входа
	checkedInAt, err := uc.bookingRepo.CheckIn(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrAlreadyCheckedIn) {
			// Конкурентный сканер успел раньше - возвращаем исходное время входа
			current, getErr := uc.bookingRepo.GetByTicketCode(ctx, req.TicketCode)
			if getErr != nil {
				uc.logger.Error("VerifyCheckIn: failed to re-read booking id=%s: %v", booking.ID, getErr)
				return nil, fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, getErr)
			}
			uc.logger.Info("VerifyCheckIn: booking id=%s lost check-in race", booking.ID)
			return &Response{
				Success:     false,
				Message:     MsgAlreadyCheckedIn,
				CheckedInAt: checkedInAtOrZero(current),
				Booking:     info,
			}, nil
		}
		uc.logger.Error("VerifyCheckIn: failed to check in booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to check in: %v", ErrInternal, err)
	}

	uc.logger.Info("VerifyCheckIn: booking id=%s checked in", booking.ID)

	return &Response{
		Success:     true,
		Message:     MsgCheckInSuccessful,
		CheckedInAt: checkedInAt,
		Booking:     info,
	}, nil
}

func checkedInAtOrZero(b *domain.Booking) time.Time {
	if b.CheckedInAt != nil {
		return *b.CheckedInAt
	}
	return time.Time{}
}
