package verify_checkin

import "errors"

var (
	// ErrInvalidTicket возвращается, когда код билета не найден.
	// Причина (опечатка, поддельный код, отмененное бронирование без билета)
	// наружу не раскрывается
	ErrInvalidTicket = errors.New("verify_checkin: invalid ticket")

	// ErrNotConfirmed возвращается, когда бронирование не в статусе confirmed
	ErrNotConfirmed = errors.New("verify_checkin: booking is not confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("verify_checkin: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_checkin: internal error")
)
