package stripegw

import "errors"

var (
	// ErrGatewayUnavailable возвращается, когда шлюз недоступен или не сконфигурирован
	// (отсутствует секретный ключ, сетевая ошибка, таймаут)
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGateway возвращается, когда Stripe отклонил запрос
	// (некорректная сумма, неподдерживаемая валюта и т.п.)
	ErrGateway = errors.New("payment gateway rejected request")

	// ErrIntentNotFound возвращается, когда интент не найден в Stripe
	ErrIntentNotFound = errors.New("payment intent not found")

	// ErrNotRefundable возвращается при попытке вернуть средства по интенту,
	// который не был успешно оплачен или уже возвращен
	ErrNotRefundable = errors.New("payment intent is not refundable")

	// ErrInvalidResponse возвращается при некорректном ответе Stripe API
	ErrInvalidResponse = errors.New("stripegw client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("stripegw client: internal error")
)
