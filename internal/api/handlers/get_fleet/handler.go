package get_fleet

import (
	"net/http"

	"github.com/sweetnarcisse/SN-BookingService/internal/api/handlers"
	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

// BoatPayload HTTP model of one active boat
type BoatPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// FleetResponse HTTP response model of the active fleet
type FleetResponse struct {
	Boats []BoatPayload `json:"boats"`
}

type Handler struct {
	service FleetService
	logger  Logger
}

func NewHandler(service FleetService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fleet
// The rotation order is the returned order: boats sorted by id.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boats, err := h.service.GetActiveBoats(r.Context())
	if err != nil {
		h.logger.Error("GET /fleet - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := FleetResponse{Boats: make([]BoatPayload, 0, len(boats))}
	for _, b := range boats {
		resp.Boats = append(resp.Boats, toPayload(b))
	}

	h.logger.Info("GET /fleet - %d active boats", len(boats))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func toPayload(b *domain.Boat) BoatPayload {
	return BoatPayload{
		ID:       b.ID,
		Name:     b.Name,
		Capacity: b.Capacity,
		Status:   string(b.Status),
	}
}
