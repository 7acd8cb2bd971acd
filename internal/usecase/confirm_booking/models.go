package confirm_booking

import (
	"time"

	"github.com/nocta/NCB-BookingService/pkg/types"
)

// Request модель запроса на подтверждение бронирования
type Request struct {
	BookingID string // ID бронирования
	UserID    string // ID пользователя (из заголовка X-User-ID)
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	ID         string
	UserID     string
	TableID    string
	VenueID    string
	Date       time.Time
	Time       types.TimeString
	GuestCount int

	TablePrice  float64
	PlatformFee float64
	TotalAmount float64

	Status        string
	PaymentStatus string

	// TicketCode выдается ровно один раз при подтверждении
	TicketCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}
