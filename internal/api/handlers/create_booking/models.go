package create_booking

import (
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
	createBooking "github.com/nocta/NCB-BookingService/internal/usecase/create_booking"
	"github.com/nocta/NCB-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TableID         string  `json:"tableId"`
	Date            string  `json:"date"` // "2025-10-15"
	Time            string  `json:"time"` // "22:00"
	GuestCount      int     `json:"guestCount"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

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

	// ClientSecret платежного намерения для завершения оплаты на клиенте
	ClientSecret string `json:"clientSecret"`

	SpecialRequests *string `json:"specialRequests,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	timeSlot, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		TableID:         r.TableID,
		Date:            date,
		Time:            timeSlot,
		GuestCount:      r.GuestCount,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		TableID:         resp.TableID,
		VenueID:         resp.VenueID,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.Time.String(),
		GuestCount:      resp.GuestCount,
		TablePrice:      resp.TablePrice,
		PlatformFee:     resp.PlatformFee,
		TotalAmount:     resp.TotalAmount,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		ClientSecret:    resp.ClientSecret,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
