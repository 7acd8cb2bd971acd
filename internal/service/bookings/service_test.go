package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocta/NCB-BookingService/internal/domain"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
	"github.com/nocta/NCB-BookingService/internal/service/bookings/models"
	"github.com/nocta/NCB-BookingService/pkg/ptr"
	"github.com/nocta/NCB-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	getByIDFn    func(ctx context.Context, id string) (*domain.Booking, error)
	getByUserFn  func(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	getByVenueFn func(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.getByUserFn(ctx, userID, status)
}

func (f *fakeBookingRepo) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return f.getByVenueFn(ctx, filter)
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:            "booking-1",
		UserID:        "user-1",
		TableID:       "table-1",
		VenueID:       "venue-1",
		BookingDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		BookingTime:   types.TimeString("22:00"),
		GuestCount:    4,
		TablePrice:    300.00,
		PlatformFee:   30.00,
		TotalAmount:   330.00,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		TicketCode:    ptr.Ptr("ticket-code-1"),
		CreatedAt:     time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 9, 10, 15, 5, 0, 0, time.UTC),
	}
}

func TestGetByID_Success(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return sampleBooking(), nil
		},
	}

	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), "booking-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, "2026-09-12", resp.Date)
	assert.Equal(t, "22:00", resp.Time)
	assert.Equal(t, 330.00, resp.TotalAmount)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}

	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return sampleBooking(), nil
		},
	}

	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), "booking-1", "other-user")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	var passedStatus *domain.BookingStatus

	repo := &fakeBookingRepo{
		getByUserFn: func(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
			passedStatus = status
			return []*domain.Booking{sampleBooking()}, nil
		},
	}

	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: "user-1",
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, passedStatus)
	assert.Equal(t, domain.StatusConfirmed, *passedStatus)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: "user-1",
		Status: ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_EmptyResult(t *testing.T) {
	repo := &fakeBookingRepo{
		getByUserFn: func(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
			return nil, nil
		},
	}

	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: "user-1"})
	require.NoError(t, err)

	assert.Empty(t, resp.Bookings)
	assert.NotNil(t, resp.Bookings)
}

func TestGetVenueBookings_Filter(t *testing.T) {
	var passedFilter domain.VenueBookingsFilter

	repo := &fakeBookingRepo{
		getByVenueFn: func(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
			passedFilter = filter
			return []*domain.Booking{sampleBooking()}, nil
		},
	}

	svc := NewService(repo, nopLogger{})

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		VenueID: "venue-1",
		Date:    &date,
		Status:  ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, "venue-1", passedFilter.VenueID)
	require.NotNil(t, passedFilter.Date)
	assert.Equal(t, date, *passedFilter.Date)
	require.NotNil(t, passedFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *passedFilter.Status)
	assert.False(t, passedFilter.IncludeInactive)
}

func TestGetTicket_Success(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return sampleBooking(), nil
		},
	}

	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetTicket(context.Background(), "booking-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "booking-1", resp.BookingID)
	assert.Equal(t, "ticket-code-1", resp.TicketCode)
	assert.Equal(t, "venue-1", resp.VenueID)
	assert.Equal(t, "2026-09-12", resp.Date)
	assert.True(t, strings.HasPrefix(resp.QRCode, "data:image/png;base64,"))
}

func TestGetTicket_NotIssued(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			booking := sampleBooking()
			booking.Status = domain.StatusPending
			booking.TicketCode = nil
			return booking, nil
		},
	}

	svc := NewService(repo, nopLogger{})

	_, err := svc.GetTicket(context.Background(), "booking-1", "user-1")
	assert.ErrorIs(t, err, ErrTicketNotIssued)
}

func TestGetTicket_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return sampleBooking(), nil
		},
	}

	svc := NewService(repo, nopLogger{})

	_, err := svc.GetTicket(context.Background(), "booking-1", "other-user")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_RepositoryError(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), "booking-1", "user-1")
	assert.ErrorIs(t, err, ErrInternal)
}
