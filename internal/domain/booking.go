package domain

import (
	"time"

	"github.com/nocta/NCB-BookingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Booking represents a table reservation at a nightclub
type Booking struct {
	ID      string
	UserID  string
	TableID string
	VenueID string

	BookingDate time.Time        // date of the reserved slot
	BookingTime types.TimeString // time of the reserved slot ("22:00")
	GuestCount  int

	// Pricing fixed at creation, never recomputed
	TablePrice  float64
	PlatformFee float64
	TotalAmount float64

	Status          BookingStatus
	PaymentStatus   PaymentStatus
	PaymentIntentID string

	// TicketCode is the opaque secret issued at confirmation.
	// Nil until the booking is confirmed; set exactly once.
	TicketCode *string

	SpecialRequests *string

	CheckedIn   bool
	CheckedInAt *time.Time

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPaid returns true if the booking has been paid for
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// HasTicket returns true if a ticket code has been issued
func (b *Booking) HasTicket() bool {
	return b.TicketCode != nil && *b.TicketCode != ""
}

// SlotDateTime combines the booking date and time into a single instant.
// Used for the past-slot cancellation check.
func (b *Booking) SlotDateTime() (time.Time, error) {
	return b.BookingTime.At(b.BookingDate)
}
