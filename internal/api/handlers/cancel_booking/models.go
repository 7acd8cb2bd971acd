package cancel_booking

import (
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
	cancelBooking "github.com/nocta/NCB-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	TableID    string `json:"tableId"`
	VenueID    string `json:"venueId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	GuestCount int    `json:"guestCount"`

	TotalAmount float64 `json:"totalAmount"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	// Refunded истинно, если при отмене был выполнен возврат средств
	Refunded bool `json:"refunded"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		TableID:       resp.TableID,
		VenueID:       resp.VenueID,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		GuestCount:    resp.GuestCount,
		TotalAmount:   resp.TotalAmount,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		Refunded:      resp.Refunded,
	}

	if resp.CancelledAt != nil {
		cancelledStr := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledStr
	}

	return out
}
