package verify_checkin

import (
	"time"

	"github.com/nocta/NCB-BookingService/pkg/types"
)

// Сообщения для персонала на входе
const (
	MsgCheckInSuccessful = "Check-in successful"
	MsgAlreadyCheckedIn  = "Already checked in"
)

// Request модель запроса на проверку билета
type Request struct {
	TicketCode string // Код билета из QR
}

// BookingInfo краткие сведения о бронировании для персонала на входе
type BookingInfo struct {
	ID         string
	TableID    string
	VenueID    string
	Date       time.Time
	Time       types.TimeString
	GuestCount int
}

// Response результат проверки билета.
// Повторное сканирование - не ошибка, а отдельный исход:
// Success=false с сообщением MsgAlreadyCheckedIn и исходным временем входа
type Response struct {
	Success     bool
	Message     string
	CheckedInAt time.Time
	Booking     BookingInfo
}
