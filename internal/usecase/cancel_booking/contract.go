package cancel_booking

import (
	"context"
	"time"

	"github.com/nocta/NCB-BookingService/internal/domain"
	"github.com/nocta/NCB-BookingService/internal/integrations/stripegw"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string, paymentStatus domain.PaymentStatus) error
}

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	MarkRefunded(ctx context.Context, bookingID, refundID string) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	Refund(ctx context.Context, intentID string, amount *float64) (*stripegw.Refund, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
