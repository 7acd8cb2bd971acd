package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nocta/NCB-BookingService/internal/api/handlers"
	"github.com/nocta/NCB-BookingService/internal/api/middleware"
	confirmBooking "github.com/nocta/NCB-BookingService/internal/usecase/confirm_booking"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "бронирование не найдено"
	msgForbidden         = "доступ запрещен"
	msgAlreadyConfirmed  = "бронирование уже подтверждено"
	msgNotPending        = "бронирование не может быть подтверждено"
	msgPaymentIncomplete = "оплата еще не прошла"
	msgPaymentFailed     = "оплата не удалась"
	msgPaymentGateway    = "платежный сервис временно недоступен"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Access denied: booking_id=%s, user_id=%s",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmBooking.ErrAlreadyConfirmed):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Already confirmed: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyConfirmed)

		case errors.Is(err, confirmBooking.ErrNotPending):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Not pending: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, confirmBooking.ErrPaymentIncomplete):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Payment incomplete: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentIncomplete)

		case errors.Is(err, confirmBooking.ErrPaymentFailed):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Payment failed: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

		case errors.Is(err, confirmBooking.ErrPaymentGateway):
			h.logger.Error("PATCH /bookings/{id}/confirm - Payment gateway unavailable: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentGateway)

		default:
			h.logger.Error("PATCH /bookings/{id}/confirm - Failed to confirm booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /bookings/{id}/confirm - Booking confirmed successfully: booking_id=%s, user_id=%s",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
