package create_booking

import (
	"net/http"

	"github.com/sweetnarcisse/SN-BookingService/internal/api/handlers"
	"github.com/sweetnarcisse/SN-BookingService/internal/api/middleware"
	createBooking "github.com/sweetnarcisse/SN-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidTime        = "format d'horaire invalide, attendu HH:MM"
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
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	isStaff := middleware.IsStaff(r.Context())
	useCaseReq, err := req.ToUseCaseRequest(isStaff)
	if err != nil {
		h.logger.Warn("POST /bookings - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result := h.useCase.Execute(r.Context(), useCaseReq)
	if !result.Success {
		status := statusForCode(result.ErrorCode)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /bookings - %s: %s", result.ErrorCode, result.Error)
		} else {
			h.logger.Warn("POST /bookings - %s: %s", result.ErrorCode, result.Error)
		}
		handlers.RespondErrorCode(w, status, result.Error, string(result.ErrorCode))
		return
	}

	h.logger.Info("POST /bookings - booking created: ref=%s, boat=%d, chained=%d, skipped=%d",
		result.Booking.PublicReference, result.Booking.BoatID,
		len(result.ChainedBookings), len(result.Overlaps))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResult(result))
}

func statusForCode(code createBooking.ErrorCode) int {
	switch code {
	case createBooking.CodeConflict:
		return http.StatusConflict
	case createBooking.CodeInvalidTime, createBooking.CodeTooLate, createBooking.CodeValidation:
		return http.StatusBadRequest
	case createBooking.CodeNoBoats:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
