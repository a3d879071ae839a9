package get_availability

import "github.com/sweetnarcisse/SN-BookingService/pkg/types"

// Request asks for the departure grid of one Paris calendar day
type Request struct {
	Date string // YYYY-MM-DD
}

// Response is the full departure grid of a day
type Response struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// Slot is one departure of the grid: the boat the rotation assigns to
// it and the remaining seats across the active fleet over its window.
type Slot struct {
	StartTime         types.TimeString `json:"startTime"`
	DurationMinutes   int              `json:"durationMinutes"`
	BoatID            int64            `json:"boatId"`
	BoatName          string           `json:"boatName"`
	RemainingCapacity int              `json:"remainingCapacity"`
	TotalCapacity     int              `json:"totalCapacity"`
	Bookable          bool             `json:"bookable"`
}
