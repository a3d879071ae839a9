package fleet

import "github.com/sweetnarcisse/SN-BookingService/internal/domain"

// SelectionReason explains how a boat was chosen for a slot
type SelectionReason string

const (
	ReasonRotation SelectionReason = "rotation"
	ReasonForced   SelectionReason = "forced"
)

// BoatSelection is the result of assigning a boat to a departure slot
type BoatSelection struct {
	Boat   *domain.Boat
	Index  int
	Reason SelectionReason
}

// SlotBooking summarizes one occupying booking of a slot
type SlotBooking struct {
	ID       string
	People   int
	Language string
}

// SlotCapacity reports the raw occupancy of one boat over a window.
// No buffer is applied here: this is the visibility query, not the
// conflict-resolution policy.
type SlotCapacity struct {
	BoatID            int64
	BoatName          string
	Capacity          int
	CurrentOccupancy  int
	RemainingCapacity int
	CanAccommodate    bool
	Bookings          []SlotBooking
}

// FleetBoatCapacity is one boat's line in a fleet capacity report
type FleetBoatCapacity struct {
	ID               int64
	Name             string
	Capacity         int
	CurrentOccupancy int
}

// FleetCapacity aggregates capacity over the active fleet for a window
type FleetCapacity struct {
	TotalCapacity     int
	AvailableCapacity int
	Boats             []FleetBoatCapacity
}

// AvailableBoat is the result of a capacity search
type AvailableBoat struct {
	Boat              *domain.Boat
	RemainingCapacity int
}
