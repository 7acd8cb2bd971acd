package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается при нарушении частичного уникального индекса
	// на активный слот (table_id, booking_date, booking_time)
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrNotConfirmable возвращается, когда условное обновление подтверждения
	// не затронуло ни одной строки (бронирование уже не pending или билет выдан)
	ErrNotConfirmable = errors.New("booking.repository: booking is not in a confirmable state")

	// ErrAlreadyCheckedIn возвращается, когда check-in уже был выполнен ранее
	ErrAlreadyCheckedIn = errors.New("booking.repository: booking already checked in")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
