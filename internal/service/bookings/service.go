package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/nocta/NCB-BookingService/internal/domain"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
	"github.com/nocta/NCB-BookingService/internal/service/bookings/models"
	"github.com/nocta/NCB-BookingService/internal/tickets"
)

// Service сервис для чтения бронирований и выдачи билетов
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только свое бронирование
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getOwnedBooking(ctx, id, userID, "GetByID")
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает бронирования заведения с фильтрацией
// по дате и статусу. По умолчанию отмененные исключаются
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetVenueBookings: fetching bookings for venue=%s", req.VenueID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%s", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTicket возвращает билет подтвержденного бронирования: код и QR-код
// как data URL. Доступен только владельцу бронирования
func (s *Service) GetTicket(ctx context.Context, id string, userID string) (*models.TicketResponse, error) {
	s.logger.Info("GetTicket: fetching ticket for booking id=%s, user=%s", id, userID)

	booking, err := s.getOwnedBooking(ctx, id, userID, "GetTicket")
	if err != nil {
		return nil, err
	}

	if !booking.HasTicket() {
		s.logger.Warn("GetTicket: booking id=%s has no ticket (status=%s)", id, booking.Status)
		return nil, ErrTicketNotIssued
	}

	payload := tickets.NewPayload(booking.ID, *booking.TicketCode, booking.VenueID, booking.BookingDate)
	qr, err := tickets.RenderDataURL(payload)
	if err != nil {
		s.logger.Error("GetTicket: failed to render QR for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetTicket - failed to render QR: %v", ErrInternal, err)
	}

	s.logger.Info("GetTicket: successfully rendered ticket for booking id=%s", id)

	return &models.TicketResponse{
		BookingID:  booking.ID,
		TicketCode: *booking.TicketCode,
		VenueID:    booking.VenueID,
		Date:       booking.BookingDate.Format(domain.DateFormat),
		QRCode:     qr,
	}, nil
}

// getOwnedBooking получает бронирование и проверяет владельца
func (s *Service) getOwnedBooking(ctx context.Context, id string, userID string, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
