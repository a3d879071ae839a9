package get_planning

import (
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

// PlanningEntry is one departure line of the staff planning view
type PlanningEntry struct {
	ID              string  `json:"id"`
	PublicReference string  `json:"publicReference"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	BoatID          int64   `json:"boatId"`
	BoatName        string  `json:"boatName,omitempty"`
	NumberOfPeople  int     `json:"numberOfPeople"`
	Language        string  `json:"language"`
	Status          string  `json:"status"`
	IsPaid          bool    `json:"isPaid"`
	CustomerName    string  `json:"customerName,omitempty"`
	Message         *string `json:"message,omitempty"`
}

// PlanningResponse HTTP response model of the staff planning view
type PlanningResponse struct {
	Date     string          `json:"date"`
	Bookings []PlanningEntry `json:"bookings"`
}

// FromDomain converts the day's bookings into the planning response
func FromDomain(date string, list []*domain.Booking) *PlanningResponse {
	resp := &PlanningResponse{Date: date, Bookings: make([]PlanningEntry, 0, len(list))}
	for _, b := range list {
		entry := PlanningEntry{
			ID:              b.ID,
			PublicReference: b.PublicReference,
			StartTime:       b.StartTime.Format(time.RFC3339),
			EndTime:         b.EndTime.Format(time.RFC3339),
			BoatID:          b.BoatID,
			NumberOfPeople:  b.NumberOfPeople,
			Language:        b.Language,
			Status:          string(b.Status),
			IsPaid:          b.IsPaid,
			Message:         b.Message,
		}
		if b.Boat != nil {
			entry.BoatName = b.Boat.Name
		}
		if b.Customer != nil {
			entry.CustomerName = b.Customer.FirstName + " " + b.Customer.LastName
		}
		resp.Bookings = append(resp.Bookings, entry)
	}
	return resp
}
