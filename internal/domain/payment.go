package domain

import "time"

// PaymentRecordStatus represents the state of a ledger entry
type PaymentRecordStatus string

const (
	PaymentRecordSucceeded PaymentRecordStatus = "succeeded"
	PaymentRecordRefunded  PaymentRecordStatus = "refunded"
)

// Payment is an append-only ledger entry created when a booking is
// confirmed. Exactly one entry exists per confirmed booking; only the
// status and refund reference change on refund.
type Payment struct {
	ID        string
	BookingID string
	UserID    string

	Amount   float64
	Currency string

	StripePaymentIntentID string
	StripeChargeID        *string
	RefundID              *string

	Status PaymentRecordStatus

	CreatedAt   time.Time
	ProcessedAt time.Time
}
