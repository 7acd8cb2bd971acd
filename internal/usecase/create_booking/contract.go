package create_booking

import (
	"context"
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
	"github.com/nocta/NCB-BookingService/internal/integrations/stripegw"
	"github.com/nocta/NCB-BookingService/internal/integrations/venueservice"
	"github.com/nocta/NCB-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActiveBySlot(ctx context.Context, tableID string, date time.Time, timeSlot types.TimeString) (int64, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetTable(ctx context.Context, tableID string) (*venueservice.Table, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (*stripegw.Intent, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
