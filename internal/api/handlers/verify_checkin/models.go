package verify_checkin

import (
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
	verifyCheckin "github.com/nocta/NCB-BookingService/internal/usecase/verify_checkin"
)

// VerifyCheckInRequest HTTP request model
type VerifyCheckInRequest struct {
	TicketCode string `json:"ticketCode"`
}

// BookingInfo краткие сведения о бронировании для персонала на входе
type BookingInfo struct {
	ID         string `json:"id"`
	TableID    string `json:"tableId"`
	VenueID    string `json:"venueId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	GuestCount int    `json:"guestCount"`
}

// VerifyCheckInResponse HTTP response model
type VerifyCheckInResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	CheckedInAt string      `json:"checkedInAt"` // ISO 8601 format
	Booking     BookingInfo `json:"booking"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *verifyCheckin.Response) *VerifyCheckInResponse {
	return &VerifyCheckInResponse{
		Success:     resp.Success,
		Message:     resp.Message,
		CheckedInAt: resp.CheckedInAt.Format(time.RFC3339),
		Booking: BookingInfo{
			ID:         resp.Booking.ID,
			TableID:    resp.Booking.TableID,
			VenueID:    resp.Booking.VenueID,
			Date:       resp.Booking.Date.Format(domain.DateFormat),
			Time:       resp.Booking.Time.String(),
			GuestCount: resp.Booking.GuestCount,
		},
	}
}
