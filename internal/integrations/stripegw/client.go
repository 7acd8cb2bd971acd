// Package stripegw клиент платежного шлюза Stripe.
// Единственное место в сервисе, где суммы конвертируются в минорные
// единицы (центы): весь остальной код работает с десятичной валютой.
package stripegw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Stripe API
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Stripe.
// baseURL переопределяется в тестах (httptest), в production -
// https://api.stripe.com. Пустой secretKey означает, что шлюз не
// сконфигурирован: все операции вернут ErrGatewayUnavailable.
func NewClient(baseURL, secretKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// toMinorUnits конвертирует десятичную сумму в минорные единицы (центы)
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// fromMinorUnits конвертирует минорные единицы обратно в десятичную сумму
func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}

// CreateIntent создает платежный интент на указанную сумму.
// Возвращает ID интента и client_secret для завершения оплаты клиентом.
func (c *Client) CreateIntent(ctx context.Context, amount float64, currency string) (*Intent, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("%w: secret key is not configured", ErrGatewayUnavailable)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(toMinorUnits(amount), 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	var raw intentResponse
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, &raw); err != nil {
		return nil, err
	}

	c.log.Info("CreateIntent: created intent id=%s, amount=%.2f %s", raw.ID, amount, currency)
	return fromIntentResponse(raw), nil
}

// RetrieveIntent получает актуальный статус интента
func (c *Client) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("%w: secret key is not configured", ErrGatewayUnavailable)
	}

	var raw intentResponse
	path := "/v1/payment_intents/" + url.PathEscape(intentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	return fromIntentResponse(raw), nil
}

// Refund создает возврат средств по интенту.
// amount == nil означает полный возврат.
func (c *Client) Refund(ctx context.Context, intentID string, amount *float64) (*Refund, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("%w: secret key is not configured", ErrGatewayUnavailable)
	}

	form := url.Values{}
	form.Set("payment_intent", intentID)
	if amount != nil {
		form.Set("amount", strconv.FormatInt(toMinorUnits(*amount), 10))
	}

	var raw refundResponse
	if err := c.do(ctx, http.MethodPost, "/v1/refunds", form, &raw); err != nil {
		return nil, err
	}

	c.log.Info("Refund: created refund id=%s for intent=%s", raw.ID, intentID)
	return &Refund{ID: raw.ID, Status: raw.Status}, nil
}

// do выполняет запрос к Stripe API и декодирует ответ в out
func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты: определенного результата нет,
		// вызывающий код не должен менять локальное состояние
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
		}
		return nil
	}

	return c.mapAPIError(resp)
}

// mapAPIError транслирует ошибку Stripe API в sentinel-ошибку клиента
func (c *Client) mapAPIError(resp *http.Response) error {
	var apiErr errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		return fmt.Errorf("%w: status %d, unreadable error body", ErrInvalidResponse, resp.StatusCode)
	}

	c.log.Warn("Stripe API error: status=%d, type=%s, code=%s, message=%s",
		resp.StatusCode, apiErr.Error.Type, apiErr.Error.Code, apiErr.Error.Message)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrIntentNotFound

	case apiErr.Error.Code == "resource_missing":
		return ErrIntentNotFound

	case apiErr.Error.Code == "charge_already_refunded",
		apiErr.Error.Code == "payment_intent_unexpected_state":
		return fmt.Errorf("%w: %s", ErrNotRefundable, apiErr.Error.Message)

	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: invalid credentials", ErrGatewayUnavailable)

	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)

	default:
		return fmt.Errorf("%w: %s", ErrGateway, apiErr.Error.Message)
	}
}

// fromIntentResponse конвертирует сырой ответ в модель Intent
func fromIntentResponse(raw intentResponse) *Intent {
	return &Intent{
		ID:           raw.ID,
		ClientSecret: raw.ClientSecret,
		Status:       normalizeStatus(raw.Status),
		Amount:       fromMinorUnits(raw.Amount),
		Currency:     raw.Currency,
		LatestCharge: raw.LatestCharge,
	}
}

// normalizeStatus сводит статусы Stripe к четырем бизнес-статусам
func normalizeStatus(status string) IntentStatus {
	switch status {
	case "succeeded":
		return IntentSucceeded
	case "canceled":
		return IntentCanceled
	case "requires_payment_method", "requires_confirmation",
		"requires_action", "requires_capture", "processing":
		return IntentRequiresPayment
	default:
		return IntentFailed
	}
}

// IsDefinitive сообщает, является ли ошибка шлюза определенным отказом
// (в отличие от таймаута/недоступности, когда результат неизвестен)
func IsDefinitive(err error) bool {
	return !errors.Is(err, ErrGatewayUnavailable)
}
