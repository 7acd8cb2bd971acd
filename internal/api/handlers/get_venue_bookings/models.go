package get_venue_bookings

import (
	"strconv"
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
	"github.com/nocta/NCB-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(venueID, statusStr, dateStr, includeInactiveStr string) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		VenueID: venueID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
