package mark_paid

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sweetnarcisse/SN-BookingService/internal/api/handlers"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/bookings"
)

const (
	msgNotFound       = "réservation introuvable"
	msgAlreadyPaid    = "réservation déjà payée"
	msgPaymentPending = "paiement non confirmé par le prestataire"
)

// MarkPaidResponse HTTP response model
type MarkPaidResponse struct {
	IsPaid bool `json:"isPaid"`
}

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

// Handle POST /api/v1/bookings/{bookingId}/mark-paid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	if err := h.service.MarkPaid(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/mark-paid - booking not found: id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings/{id}/mark-paid - already paid: id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, bookings.ErrPaymentPending):
			h.logger.Warn("POST /bookings/{id}/mark-paid - payment pending: id=%s", bookingID)
			handlers.RespondConflict(w, msgPaymentPending)

		default:
			h.logger.Error("POST /bookings/{id}/mark-paid - failed: id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/mark-paid - booking marked paid: id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, MarkPaidResponse{IsPaid: true})
}
