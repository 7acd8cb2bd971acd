package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocta/NCB-BookingService/internal/api/middleware"
	createBooking "github.com/nocta/NCB-BookingService/internal/usecase/create_booking"
	"github.com/nocta/NCB-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	executeFn func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return f.executeFn(ctx, req)
}

func doRequest(t *testing.T, uc *fakeUseCase, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rr := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rr, req)
	return rr
}

const validBody = `{"tableId":"table-1","date":"2026-09-12","time":"22:00","guestCount":4}`

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{
		executeFn: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
			assert.Equal(t, "user-1", req.UserID)
			assert.Equal(t, "table-1", req.TableID)
			assert.Equal(t, types.TimeString("22:00"), req.Time)
			return &createBooking.Response{
				ID:            "booking-1",
				UserID:        req.UserID,
				TableID:       req.TableID,
				VenueID:       "venue-1",
				Date:          req.Date,
				Time:          req.Time,
				GuestCount:    req.GuestCount,
				TablePrice:    300.00,
				PlatformFee:   30.00,
				TotalAmount:   330.00,
				Status:        "pending",
				PaymentStatus: "pending",
				ClientSecret:  "pi_123_secret_abc",
				CreatedAt:     time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
				UpdatedAt:     time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
			}, nil
		},
	}

	rr := doRequest(t, uc, "user-1", validBody)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, "2026-09-12", resp.Date)
	assert.Equal(t, 330.00, resp.TotalAmount)
	assert.Equal(t, "pi_123_secret_abc", resp.ClientSecret)
}

func TestHandle_MissingUserHeader(t *testing.T) {
	rr := doRequest(t, &fakeUseCase{}, "", validBody)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	rr := doRequest(t, &fakeUseCase{}, "user-1", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandle_InvalidDateFormat(t *testing.T) {
	rr := doRequest(t, &fakeUseCase{}, "user-1",
		`{"tableId":"table-1","date":"12.09.2026","time":"22:00","guestCount":4}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot unavailable", err: createBooking.ErrSlotUnavailable, wantStatus: http.StatusConflict},
		{name: "table not found", err: createBooking.ErrTableNotFound, wantStatus: http.StatusNotFound},
		{name: "table unavailable", err: createBooking.ErrTableUnavailable, wantStatus: http.StatusConflict},
		{name: "too many guests", err: createBooking.ErrTooManyGuests, wantStatus: http.StatusBadRequest},
		{name: "date in past", err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "gateway unavailable", err: createBooking.ErrPaymentGateway, wantStatus: http.StatusServiceUnavailable},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{
				executeFn: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
					return nil, tt.err
				},
			}

			rr := doRequest(t, uc, "user-1", validBody)
			assert.Equal(t, tt.wantStatus, rr.Code)

			var errResp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp["error"])
		})
	}
}
