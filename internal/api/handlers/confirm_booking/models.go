package confirm_booking

import (
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
	confirmBooking "github.com/nocta/NCB-BookingService/internal/usecase/confirm_booking"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	TableID    string `json:"tableId"`
	VenueID    string `json:"venueId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	GuestCount int    `json:"guestCount"`

	TablePrice  float64 `json:"tablePrice"`
	PlatformFee float64 `json:"platformFee"`
	TotalAmount float64 `json:"totalAmount"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	// TicketCode выдается ровно один раз при подтверждении
	TicketCode string `json:"ticketCode"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		TableID:       resp.TableID,
		VenueID:       resp.VenueID,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		GuestCount:    resp.GuestCount,
		TablePrice:    resp.TablePrice,
		PlatformFee:   resp.PlatformFee,
		TotalAmount:   resp.TotalAmount,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		TicketCode:    resp.TicketCode,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
