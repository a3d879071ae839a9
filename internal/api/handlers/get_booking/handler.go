package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sweetnarcisse/SN-BookingService/internal/api/handlers"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/bookings"
)

const msgNotFound = "réservation introuvable"

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

// Handle GET /api/v1/bookings/{bookingId}
// The path value is a UUID or a public reference like "SN-26-0042".
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.service.GetBooking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - booking not found: id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - failed: id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - booking retrieved: ref=%s", booking.PublicReference)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(booking))
}
