package confirm_booking

import (
	"context"

	"github.com/nocta/NCB-BookingService/internal/domain"
	"github.com/nocta/NCB-BookingService/internal/integrations/stripegw"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ConfirmWithTicket(ctx context.Context, id, ticketCode string) error
	UpdatePaymentStatus(ctx context.Context, id string, paymentStatus domain.PaymentStatus) error
}

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	RetrieveIntent(ctx context.Context, intentID string) (*stripegw.Intent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
