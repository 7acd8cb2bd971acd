package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/nocta/NCB-BookingService/internal/domain"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
	"github.com/nocta/NCB-BookingService/internal/integrations/stripegw"
	venueClient "github.com/nocta/NCB-BookingService/internal/integrations/venueservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	venueClient  VenueServiceClient
	gateway      PaymentGateway
	feePercent   float64
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	gateway PaymentGateway,
	feePercent float64,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueClient:  venueClient,
		gateway:      gateway,
		feePercent:   feePercent,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Конкурентные заявки на один слот разрешает не транзакция, а частичный
// уникальный индекс на активный слот: предварительная проверка доступности
// лишь отсекает заведомо занятые слоты до обращения к платежному шлюзу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, table=%s, date=%s, time=%s, guests=%d",
		req.UserID, req.TableID, req.Date.Format(domain.DateFormat), req.Time, req.GuestCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем стол из VenueService
	table, err := uc.venueClient.GetTable(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, venueClient.ErrTableNotFound) {
			uc.logger.Warn("CreateBooking: table id=%s not found", req.TableID)
			return nil, ErrTableNotFound
		}
		uc.logger.Error("CreateBooking: failed to get table id=%s: %v", req.TableID, err)
		return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
	}

	// 4. Стол должен продаваться и вмещать гостей
	if !table.Available {
		uc.logger.Warn("CreateBooking: table id=%s is not available", req.TableID)
		return nil, ErrTableUnavailable
	}
	if req.GuestCount > table.Capacity {
		uc.logger.Warn("CreateBooking: %d guests exceed capacity %d of table id=%s",
			req.GuestCount, table.Capacity, req.TableID)
		return nil, ErrTooManyGuests
	}

	// 5. Предварительная проверка занятости слота
	count, err := uc.bookingRepo.CountActiveBySlot(ctx, req.TableID, req.Date, req.Time)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check slot availability: %v", err)
		return nil, fmt.Errorf("%w: failed to check slot availability: %v", ErrInternal, err)
	}
	if count > 0 {
		uc.logger.Warn("CreateBooking: slot table=%s date=%s time=%s already taken",
			req.TableID, req.Date.Format(domain.DateFormat), req.Time)
		return nil, ErrSlotUnavailable
	}

	// 6. Фиксируем цену на момент создания
	price := domain.ComputePrice(table.Price, uc.feePercent)

	// 7. Создаем платежное намерение до записи в БД
	intent, err := uc.gateway.CreateIntent(ctx, price.TotalAmount, uc.currency)
	if err != nil {
		if errors.Is(err, stripegw.ErrGatewayUnavailable) {
			uc.logger.Error("CreateBooking: payment gateway unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
		}
		uc.logger.Error("CreateBooking: failed to create payment intent: %v", err)
		return nil, fmt.Errorf("%w: failed to create payment intent: %v", ErrInternal, err)
	}

	// 8. Сохраняем бронирование. Уникальный индекс разрешает гонку:
	// проигравшая вставка получает ErrSlotTaken
	booking := &domain.Booking{
		UserID:          req.UserID,
		TableID:         req.TableID,
		VenueID:         table.VenueID,
		BookingDate:     req.Date,
		BookingTime:     req.Time,
		GuestCount:      req.GuestCount,
		TablePrice:      price.TablePrice,
		PlatformFee:     price.PlatformFee,
		TotalAmount:     price.TotalAmount,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentIntentID: intent.ID,
		SpecialRequests: req.SpecialRequests,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Намерение остается неиспользованным, оплата по нему не пройдет
			uc.logger.Warn("CreateBooking: lost slot race for table=%s date=%s time=%s, intent=%s abandoned",
				req.TableID, req.Date.Format(domain.DateFormat), req.Time, intent.ID)
			return nil, ErrSlotUnavailable
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, intent=%s", created.ID, intent.ID)

	return &Response{
		ID:              created.ID,
		UserID:          created.UserID,
		TableID:         created.TableID,
		VenueID:         created.VenueID,
		Date:            created.BookingDate,
		Time:            created.BookingTime,
		GuestCount:      created.GuestCount,
		TablePrice:      created.TablePrice,
		PlatformFee:     created.PlatformFee,
		TotalAmount:     created.TotalAmount,
		Status:          string(created.Status),
		PaymentStatus:   string(created.PaymentStatus),
		ClientSecret:    intent.ClientSecret,
		SpecialRequests: created.SpecialRequests,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}
