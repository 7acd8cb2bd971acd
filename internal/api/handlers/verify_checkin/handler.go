package verify_checkin

import (
	"errors"
	"net/http"

	"github.com/nocta/NCB-BookingService/internal/api/handlers"
	verifyCheckin "github.com/nocta/NCB-BookingService/internal/usecase/verify_checkin"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTicket      = "билет недействителен"
	msgNotConfirmed       = "бронирование не подтверждено"
	msgMissingTicketCode  = "отсутствует код билета"
)

type Handler struct {
	useCase VerifyCheckInUseCase
	logger  Logger
}

func NewHandler(useCase VerifyCheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/verify-checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyCheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/verify-checkin - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &verifyCheckin.Request{
		TicketCode: req.TicketCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, verifyCheckin.ErrInvalidInput):
			h.logger.Warn("POST /bookings/verify-checkin - Missing ticket code")
			handlers.RespondBadRequest(w, msgMissingTicketCode)

		case errors.Is(err, verifyCheckin.ErrInvalidTicket):
			h.logger.Warn("POST /bookings/verify-checkin - Invalid ticket presented")
			handlers.RespondNotFound(w, msgInvalidTicket)

		case errors.Is(err, verifyCheckin.ErrNotConfirmed):
			h.logger.Warn("POST /bookings/verify-checkin - Booking not confirmed: %v", err)
			handlers.RespondConflict(w, msgNotConfirmed)

		default:
			h.logger.Error("POST /bookings/verify-checkin - Failed to verify ticket: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/verify-checkin - Verification completed: booking_id=%s, success=%t",
		result.Booking.ID, result.Success)
	handlers.RespondJSON(w, http.StatusOK, response)
}
