package domain

import "time"

// VenueBookingsFilter narrows venue booking listings.
// Zero-value fields are ignored.
type VenueBookingsFilter struct {
	VenueID string

	// Date limits results to a single booking date
	Date *time.Time

	// Status limits results to a single booking status
	Status *BookingStatus

	// IncludeInactive keeps cancelled bookings in the listing
	IncludeInactive bool
}
