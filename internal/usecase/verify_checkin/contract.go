package verify_checkin

import (
	"context"
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByTicketCode(ctx context.Context, ticketCode string) (*domain.Booking, error)
	CheckIn(ctx context.Context, id string) (time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
