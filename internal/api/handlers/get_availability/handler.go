package get_availability

import (
	"errors"
	"net/http"

	"github.com/sweetnarcisse/SN-BookingService/internal/api/handlers"
	getAvailability "github.com/sweetnarcisse/SN-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidDate  = "format de date invalide, attendu YYYY-MM-DD"
	msgNoActiveBoat = "aucune barque active"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrNoActiveBoats):
			h.logger.Error("GET /availability - no active boats")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNoActiveBoat)

		default:
			h.logger.Error("GET /availability - failed: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - %d slots for %s", len(resp.Slots), date)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
