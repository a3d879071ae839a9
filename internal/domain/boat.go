package domain

import "time"

// BoatStatus represents the operational status of a boat
type BoatStatus string

const (
	BoatStatusActive      BoatStatus = "ACTIVE"
	BoatStatusMaintenance BoatStatus = "MAINTENANCE"
	BoatStatusRetired     BoatStatus = "RETIRED"
)

// Boat represents a vessel of the fleet.
// The scheduling core only reads boats; fleet administration owns writes.
// A boat leaving ACTIVE status stops receiving new slots but keeps its
// existing bookings.
type Boat struct {
	ID       int64
	Name     string
	Capacity int
	Status   BoatStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the boat participates in scheduling
func (b *Boat) IsActive() bool {
	return b.Status == BoatStatusActive
}
