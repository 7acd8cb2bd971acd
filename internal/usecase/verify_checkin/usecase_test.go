package verify_checkin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocta/NCB-BookingService/internal/domain"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
	"github.com/nocta/NCB-BookingService/pkg/ptr"
	"github.com/nocta/NCB-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	getByTicketCodeFn func(ctx context.Context, ticketCode string) (*domain.Booking, error)
	checkInFn         func(ctx context.Context, id string) (time.Time, error)
}

func (f *fakeBookingRepo) GetByTicketCode(ctx context.Context, ticketCode string) (*domain.Booking, error) {
	return f.getByTicketCodeFn(ctx, ticketCode)
}

func (f *fakeBookingRepo) CheckIn(ctx context.Context, id string) (time.Time, error) {
	return f.checkInFn(ctx, id)
}

var checkInTime = time.Date(2026, 9, 12, 22, 15, 0, 0, time.UTC)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "booking-1",
		UserID:      "user-1",
		TableID:     "table-1",
		VenueID:     "venue-1",
		BookingDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		BookingTime: types.TimeString("22:00"),
		GuestCount:  4,
		Status:      domain.StatusConfirmed,
		TicketCode:  ptr.Ptr("ticket-code-1"),
	}
}

func TestVerifyCheckIn_Success(t *testing.T) {
	repo := &fakeBookingRepo{
		getByTicketCodeFn: func(ctx context.Context, ticketCode string) (*domain.Booking, error) {
			assert.Equal(t, "ticket-code-1", ticketCode)
			return confirmedBooking(), nil
		},
		checkInFn: func(ctx context.Context, id string) (time.Time, error) {
			assert.Equal(t, "booking-1", id)
			return checkInTime, nil
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TicketCode: "ticket-code-1"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, MsgCheckInSuccessful, resp.Message)
	assert.Equal(t, checkInTime, resp.CheckedInAt)
	assert.Equal(t, "booking-1", resp.Booking.ID)
	assert.Equal(t, "venue-1", resp.Booking.VenueID)
	assert.Equal(t, 4, resp.Booking.GuestCount)
}

func TestVerifyCheckIn_EmptyCode(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TicketCode: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerifyCheckIn_UnknownTicket(t *testing.T) {
	repo := &fakeBookingRepo{
		getByTicketCodeFn: func(ctx context.Context, ticketCode string) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TicketCode: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidTicket)
}

func TestVerifyCheckIn_NotConfirmed(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{name: "cancelled", status: domain.StatusCancelled},
		{name: "pending", status: domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{
				getByTicketCodeFn: func(ctx context.Context, ticketCode string) (*domain.Booking, error) {
					booking := confirmedBooking()
					booking.Status = tt.status
					return booking, nil
				},
			}

			uc := NewUseCase(repo, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{TicketCode: "ticket-code-1"})
			assert.ErrorIs(t, err, ErrNotConfirmed)
		})
	}
}

func TestVerifyCheckIn_AlreadyCheckedIn(t *testing.T) {
	repo := &fakeBookingRepo{
		getByTicketCodeFn: func(ctx context.Context, ticketCode string) (*domain.Booking, error) {
			booking := confirmedBooking()
			booking.CheckedIn = true
			booking.CheckedInAt = &checkInTime
			return booking, nil
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TicketCode: "ticket-code-1"})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, MsgAlreadyCheckedIn, resp.Message)
	// Возвращается исходное время входа
	assert.Equal(t, checkInTime, resp.CheckedInAt)
}

func TestVerifyCheckIn_LostCheckInRace(t *testing.T) {
	// Конкурентный сканер успел между чтением и отметкой входа
	calls := 0
	repo := &fakeBookingRepo{
		getByTicketCodeFn: func(ctx context.Context, ticketCode string) (*domain.Booking, error) {
			calls++
			booking := confirmedBooking()
			if calls > 1 {
				booking.CheckedIn = true
				booking.CheckedInAt = &checkInTime
			}
			return booking, nil
		},
		checkInFn: func(ctx context.Context, id string) (time.Time, error) {
			return time.Time{}, bookingRepo.ErrAlreadyCheckedIn
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TicketCode: "ticket-code-1"})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, MsgAlreadyCheckedIn, resp.Message)
	assert.Equal(t, checkInTime, resp.CheckedInAt)
}

func TestVerifyCheckIn_RepositoryError(t *testing.T) {
	repo := &fakeBookingRepo{
		getByTicketCodeFn: func(ctx context.Context, ticketCode string) (*domain.Booking, error) {
			return nil, errors.New("connection refused")
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TicketCode: "ticket-code-1"})
	assert.ErrorIs(t, err, ErrInternal)
}
