package stripegw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "sk_test_123", 5*time.Second, nopLogger{})
}

func TestCreateIntent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		// 330.00 EUR передаются в центах
		assert.Equal(t, "33000", r.PostForm.Get("amount"))
		assert.Equal(t, "eur", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "pi_123",
			"client_secret": "pi_123_secret_abc",
			"status": "requires_payment_method",
			"amount": 33000,
			"currency": "eur"
		}`))
	})

	intent, err := client.CreateIntent(context.Background(), 330.00, "eur")
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, IntentRequiresPayment, intent.Status)
	assert.Equal(t, 330.00, intent.Amount)
}

func TestCreateIntentWithoutSecretKey(t *testing.T) {
	client := NewClient("https://api.stripe.com", "", time.Second, nopLogger{})

	_, err := client.CreateIntent(context.Background(), 100, "eur")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateIntentProviderRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "code": "parameter_invalid_integer", "message": "Invalid positive integer"}}`))
	})

	_, err := client.CreateIntent(context.Background(), -5, "eur")
	assert.ErrorIs(t, err, ErrGateway)
	assert.True(t, IsDefinitive(err))
}

func TestRetrieveIntentStatusNormalization(t *testing.T) {
	tests := []struct {
		stripeStatus string
		want         IntentStatus
	}{
		{"succeeded", IntentSucceeded},
		{"canceled", IntentCanceled},
		{"requires_payment_method", IntentRequiresPayment},
		{"requires_action", IntentRequiresPayment},
		{"processing", IntentRequiresPayment},
	}

	for _, tt := range tests {
		t.Run(tt.stripeStatus, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/payment_intents/pi_42", r.URL.Path)
				_, _ = w.Write([]byte(`{"id": "pi_42", "status": "` + tt.stripeStatus + `", "amount": 10000, "currency": "eur"}`))
			})

			intent, err := client.RetrieveIntent(context.Background(), "pi_42")
			require.NoError(t, err)
			assert.Equal(t, tt.want, intent.Status)
		})
	}
}

func TestRetrieveIntentNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "code": "resource_missing", "message": "No such payment_intent"}}`))
	})

	_, err := client.RetrieveIntent(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, ErrIntentNotFound)
}

func TestRefundFull(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/refunds", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pi_123", r.PostForm.Get("payment_intent"))
		// полный возврат - сумма не передается
		assert.Empty(t, r.PostForm.Get("amount"))

		_, _ = w.Write([]byte(`{"id": "re_1", "status": "succeeded"}`))
	})

	refund, err := client.Refund(context.Background(), "pi_123", nil)
	require.NoError(t, err)
	assert.Equal(t, "re_1", refund.ID)
}

func TestRefundPartial(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "5000", r.PostForm.Get("amount"))
		_, _ = w.Write([]byte(`{"id": "re_2", "status": "succeeded"}`))
	})

	amount := 50.00
	refund, err := client.Refund(context.Background(), "pi_123", &amount)
	require.NoError(t, err)
	assert.Equal(t, "re_2", refund.ID)
}

func TestRefundNotRefundable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "code": "payment_intent_unexpected_state", "message": "This PaymentIntent has no successful charge to refund"}}`))
	})

	_, err := client.Refund(context.Background(), "pi_unpaid", nil)
	assert.ErrorIs(t, err, ErrNotRefundable)
}

func TestGatewayUnavailableOnServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"type": "api_error", "message": "Internal server error"}}`))
	})

	_, err := client.RetrieveIntent(context.Background(), "pi_1")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.False(t, IsDefinitive(err))
}
