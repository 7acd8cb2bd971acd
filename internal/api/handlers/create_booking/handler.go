package create_booking

import (
	"errors"
	"net/http"

	"github.com/nocta/NCB-BookingService/internal/api/handlers"
	"github.com/nocta/NCB-BookingService/internal/api/middleware"
	createBooking "github.com/nocta/NCB-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTableNotFound      = "стол не найден"
	msgTableUnavailable   = "стол недоступен для бронирования"
	msgSlotUnavailable    = "стол уже забронирован на это время"
	msgTooManyGuests      = "количество гостей превышает вместимость стола"
	msgInvalidDate        = "дата бронирования в прошлом"
	msgInvalidInput       = "некорректные данные бронирования"
	msgPaymentGateway     = "платежный сервис временно недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%s, table_id=%s", userID, req.TableID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrTableNotFound):
			h.logger.Warn("POST /bookings - Table not found: table_id=%s", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createBooking.ErrTableUnavailable):
			h.logger.Warn("POST /bookings - Table unavailable: table_id=%s", req.TableID)
			handlers.RespondConflict(w, msgTableUnavailable)

		case errors.Is(err, createBooking.ErrTooManyGuests):
			h.logger.Warn("POST /bookings - Too many guests: user_id=%s, table_id=%s, guests=%d",
				userID, req.TableID, req.GuestCount)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrPaymentGateway):
			h.logger.Error("POST /bookings - Payment gateway unavailable: user_id=%s", userID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentGateway)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, table_id=%s, error=%v",
				userID, req.TableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, table_id=%s",
		result.ID, userID, req.TableID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
