package confirm_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocta/NCB-BookingService/internal/domain"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
	"github.com/nocta/NCB-BookingService/internal/integrations/stripegw"
	"github.com/nocta/NCB-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	getByIDFn           func(ctx context.Context, id string) (*domain.Booking, error)
	confirmFn           func(ctx context.Context, id, ticketCode string) error
	updatePaymentStatus func(ctx context.Context, id string, paymentStatus domain.PaymentStatus) error
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBookingRepo) ConfirmWithTicket(ctx context.Context, id, ticketCode string) error {
	return f.confirmFn(ctx, id, ticketCode)
}

func (f *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus domain.PaymentStatus) error {
	return f.updatePaymentStatus(ctx, id, paymentStatus)
}

type fakePaymentRepo struct {
	createFn func(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	return f.createFn(ctx, payment)
}

type fakeGateway struct {
	retrieveFn func(ctx context.Context, intentID string) (*stripegw.Intent, error)
}

func (f *fakeGateway) RetrieveIntent(ctx context.Context, intentID string) (*stripegw.Intent, error) {
	return f.retrieveFn(ctx, intentID)
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:              "booking-1",
		UserID:          "user-1",
		TableID:         "table-1",
		VenueID:         "venue-1",
		BookingDate:     time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		BookingTime:     types.TimeString("22:00"),
		GuestCount:      4,
		TablePrice:      300.00,
		PlatformFee:     30.00,
		TotalAmount:     330.00,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentIntentID: "pi_123",
	}
}

func succeededIntent() *stripegw.Intent {
	return &stripegw.Intent{
		ID:           "pi_123",
		Status:       stripegw.IntentSucceeded,
		Amount:       330.00,
		Currency:     "usd",
		LatestCharge: "ch_456",
	}
}

func validRequest() *Request {
	return &Request{BookingID: "booking-1", UserID: "user-1"}
}

func TestConfirmBooking_Success(t *testing.T) {
	var issuedCode string
	var recordedPayment *domain.Payment

	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return pendingBooking(), nil
		},
		confirmFn: func(ctx context.Context, id, ticketCode string) error {
			issuedCode = ticketCode
			return nil
		},
	}
	payments := &fakePaymentRepo{
		createFn: func(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
			recordedPayment = payment
			return payment, nil
		},
	}
	gw := &fakeGateway{
		retrieveFn: func(ctx context.Context, intentID string) (*stripegw.Intent, error) {
			assert.Equal(t, "pi_123", intentID)
			return succeededIntent(), nil
		},
	}

	uc := NewUseCase(repo, payments, gw, fakeTxManager{}, "usd", nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.NotEmpty(t, resp.TicketCode)
	assert.Equal(t, issuedCode, resp.TicketCode)

	require.NotNil(t, recordedPayment)
	assert.Equal(t, "booking-1", recordedPayment.BookingID)
	assert.Equal(t, 330.00, recordedPayment.Amount)
	assert.Equal(t, "usd", recordedPayment.Currency)
	assert.Equal(t, "pi_123", recordedPayment.StripePaymentIntentID)
	assert.Equal(t, domain.PaymentRecordSucceeded, recordedPayment.Status)
	require.NotNil(t, recordedPayment.StripeChargeID)
	assert.Equal(t, "ch_456", *recordedPayment.StripeChargeID)
}

func TestConfirmBooking_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}

	uc := NewUseCase(repo, &fakePaymentRepo{}, &fakeGateway{}, fakeTxManager{}, "usd", nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmBooking_Forbidden(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return pendingBooking(), nil
		},
	}

	uc := NewUseCase(repo, &fakePaymentRepo{}, &fakeGateway{}, fakeTxManager{}, "usd", nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: "booking-1", UserID: "other-user"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmBooking_StatusChecks(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		wantErr error
	}{
		{
			name:    "already confirmed",
			status:  domain.StatusConfirmed,
			wantErr: ErrAlreadyConfirmed,
		},
		{
			name:    "cancelled",
			status:  domain.StatusCancelled,
			wantErr: ErrNotPending,
		},
		{
			name:    "completed",
			status:  domain.StatusCompleted,
			wantErr: ErrNotPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{
				getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
					booking := pendingBooking()
					booking.Status = tt.status
					return booking, nil
				},
			}

			uc := NewUseCase(repo, &fakePaymentRepo{}, &fakeGateway{}, fakeTxManager{}, "usd", nopLogger{})

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfirmBooking_PaymentNotCompleted(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return pendingBooking(), nil
		},
	}
	gw := &fakeGateway{
		retrieveFn: func(ctx context.Context, intentID string) (*stripegw.Intent, error) {
			return &stripegw.Intent{ID: "pi_123", Status: stripegw.IntentRequiresPayment}, nil
		},
	}

	uc := NewUseCase(repo, &fakePaymentRepo{}, gw, fakeTxManager{}, "usd", nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
}

func TestConfirmBooking_PaymentFailed(t *testing.T) {
	var markedStatus domain.PaymentStatus

	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return pendingBooking(), nil
		},
		updatePaymentStatus: func(ctx context.Context, id string, paymentStatus domain.PaymentStatus) error {
			markedStatus = paymentStatus
			return nil
		},
	}
	gw := &fakeGateway{
		retrieveFn: func(ctx context.Context, intentID string) (*stripegw.Intent, error) {
			return &stripegw.Intent{ID: "pi_123", Status: stripegw.IntentCanceled}, nil
		},
	}

	uc := NewUseCase(repo, &fakePaymentRepo{}, gw, fakeTxManager{}, "usd", nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, domain.PaymentFailed, markedStatus)
}

func TestConfirmBooking_GatewayUnavailable(t *testing.T) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return pendingBooking(), nil
		},
	}
	gw := &fakeGateway{
		retrieveFn: func(ctx context.Context, intentID string) (*stripegw.Intent, error) {
			return nil, stripegw.ErrGatewayUnavailable
		},
	}

	uc := NewUseCase(repo, &fakePaymentRepo{}, gw, fakeTxManager{}, "usd", nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentGateway)
}

func TestConfirmBooking_LostConfirmRace(t *testing.T) {
	// Конкурентное подтверждение выиграло гонку: условное обновление
	// не нашло строку, перечитанное бронирование уже confirmed
	calls := 0
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			calls++
			booking := pendingBooking()
			if calls > 1 {
				booking.Status = domain.StatusConfirmed
			}
			return booking, nil
		},
		confirmFn: func(ctx context.Context, id, ticketCode string) error {
			return bookingRepo.ErrNotConfirmable
		},
	}
	gw := &fakeGateway{
		retrieveFn: func(ctx context.Context, intentID string) (*stripegw.Intent, error) {
			return succeededIntent(), nil
		},
	}

	uc := NewUseCase(repo, &fakePaymentRepo{}, gw, fakeTxManager{}, "usd", nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}
