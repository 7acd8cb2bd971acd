package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrForbidden возвращается при попытке отменить чужое бронирование
	ErrForbidden = errors.New("cancel_booking: booking belongs to another user")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_booking: booking already cancelled")

	// ErrNotCancellable возвращается, когда бронирование завершено
	// и отмене не подлежит
	ErrNotCancellable = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrPastBooking возвращается при попытке отменить бронирование,
	// слот которого уже прошел
	ErrPastBooking = errors.New("cancel_booking: booking slot is in the past")

	// ErrRefundFailed возвращается, когда возврат средств не прошел.
	// Бронирование при этом остается в прежнем состоянии
	ErrRefundFailed = errors.New("cancel_booking: refund failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
