package get_ticket

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nocta/NCB-BookingService/internal/api/handlers"
	"github.com/nocta/NCB-BookingService/internal/api/middleware"
	"github.com/nocta/NCB-BookingService/internal/service/bookings"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotFound        = "бронирование не найдено"
	msgForbidden       = "доступ запрещен"
	msgTicketNotIssued = "билет еще не выдан"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/ticket
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/ticket - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	ticket, err := h.service.GetTicket(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/ticket - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/ticket - Access denied: booking_id=%s, user_id=%s",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrTicketNotIssued):
			h.logger.Warn("GET /bookings/{id}/ticket - Ticket not issued: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgTicketNotIssued)

		default:
			h.logger.Error("GET /bookings/{id}/ticket - Failed to get ticket: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/ticket - Ticket retrieved successfully: booking_id=%s, user_id=%s",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, ticket)
}
