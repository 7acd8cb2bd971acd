package stripegw

// IntentStatus нормализованный статус платежного интента.
// Stripe различает несколько промежуточных статусов (requires_payment_method,
// requires_confirmation, requires_action, processing) - для бизнес-логики
// все они означают "оплата не завершена".
type IntentStatus string

const (
	IntentRequiresPayment IntentStatus = "requires_payment"
	IntentSucceeded       IntentStatus = "succeeded"
	IntentFailed          IntentStatus = "failed"
	IntentCanceled        IntentStatus = "canceled"
)

// Intent платежный интент Stripe
type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	Amount       float64 // в валюте, не в минорных единицах
	Currency     string
	LatestCharge string
}

// Refund результат возврата средств
type Refund struct {
	ID     string
	Status string
}

// intentResponse сырой ответ Stripe API на операции с интентами
type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"` // минорные единицы (центы)
	Currency     string `json:"currency"`
	LatestCharge string `json:"latest_charge"`
}

// refundResponse сырой ответ Stripe API на создание возврата
type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// errorResponse модель ошибки Stripe API
type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
