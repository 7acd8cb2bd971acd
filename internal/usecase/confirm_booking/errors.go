package confirm_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrForbidden возвращается при попытке подтвердить чужое бронирование
	ErrForbidden = errors.New("confirm_booking: booking belongs to another user")

	// ErrAlreadyConfirmed возвращается при повторном подтверждении
	ErrAlreadyConfirmed = errors.New("confirm_booking: booking already confirmed")

	// ErrNotPending возвращается, когда бронирование не в статусе pending
	// (отменено или завершено)
	ErrNotPending = errors.New("confirm_booking: booking is not pending")

	// ErrPaymentIncomplete возвращается, когда оплата по платежному намерению
	// еще не прошла
	ErrPaymentIncomplete = errors.New("confirm_booking: payment has not succeeded yet")

	// ErrPaymentFailed возвращается, когда платежное намерение отменено
	// на стороне шлюза
	ErrPaymentFailed = errors.New("confirm_booking: payment failed")

	// ErrPaymentGateway возвращается, когда платежный шлюз недоступен
	// и статус оплаты проверить не удалось
	ErrPaymentGateway = errors.New("confirm_booking: payment gateway unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
