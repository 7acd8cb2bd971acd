package create_booking

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("create_booking: table not found")

	// ErrTableUnavailable возвращается, когда стол снят с продажи заведением
	ErrTableUnavailable = errors.New("create_booking: table is not available for booking")

	// ErrSlotUnavailable возвращается, когда на слот уже есть активное бронирование
	ErrSlotUnavailable = errors.New("create_booking: table already booked for this time")

	// ErrTooManyGuests возвращается, когда количество гостей превышает вместимость стола
	ErrTooManyGuests = errors.New("create_booking: guest count exceeds table capacity")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrPaymentGateway возвращается, когда платежный шлюз недоступен
	// и создать платежное намерение не удалось
	ErrPaymentGateway = errors.New("create_booking: payment gateway unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
