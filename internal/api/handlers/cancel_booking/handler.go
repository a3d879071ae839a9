package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sweetnarcisse/SN-BookingService/internal/api/handlers"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgNotFound           = "réservation introuvable"
	msgAlreadyCancelled   = "réservation déjà annulée"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	// The body is optional; cancelling without a reason is allowed.
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/cancel - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.CancelBooking(r.Context(), bookingID, req.Reason); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - booking not found: id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /bookings/{id}/cancel - already cancelled: id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - failed: id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - booking cancelled: id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{Status: "CANCELLED"})
}
