package cancel_booking

import (
	"time"

	"github.com/nocta/NCB-BookingService/pkg/types"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID string // ID бронирования
	UserID    string // ID пользователя (из заголовка X-User-ID)
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID         string
	UserID     string
	TableID    string
	VenueID    string
	Date       time.Time
	Time       types.TimeString
	GuestCount int

	TotalAmount float64

	Status        string
	PaymentStatus string

	// Refunded истинно, если при отмене был выполнен возврат средств
	Refunded bool

	CancelledAt *time.Time
}
