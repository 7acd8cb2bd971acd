package get_ticket

import (
	"context"

	"github.com/nocta/NCB-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetTicket(ctx context.Context, id string, userID string) (*models.TicketResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
