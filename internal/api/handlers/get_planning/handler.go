package get_planning

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sweetnarcisse/SN-BookingService/internal/api/handlers"
	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

const msgInvalidDate = "format de date invalide, attendu YYYY-MM-DD"

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

// Handle GET /api/v1/planning/{date}
// Staff view of one day's departures. ?includeCancelled=true widens
// the list to cancelled bookings.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /planning/{date} - invalid date: %s", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeCancelled := r.URL.Query().Get("includeCancelled") == "true"

	list, err := h.service.ListByDate(r.Context(), date, includeCancelled)
	if err != nil {
		h.logger.Error("GET /planning/{date} - failed: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /planning/{date} - %d bookings for %s", len(list), dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(dateStr, list))
}
