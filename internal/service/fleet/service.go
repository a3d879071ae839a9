package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/internal/infra/cache"
	fleetRepo "github.com/sweetnarcisse/SN-BookingService/internal/infra/storage/fleet"
)

// Service owns the read side of the fleet: which boats are active, the
// rotation function mapping wall-clock slots to boats, and occupancy
// reporting. Booking writes never go through here.
type Service struct {
	fleetRepo   FleetRepository
	bookingRepo BookingRepository
	cache       Cache
	schedule    domain.Schedule
	logger      Logger
}

// NewService creates a fleet service
func NewService(
	fleetRepo FleetRepository,
	bookingRepo BookingRepository,
	cache Cache,
	schedule domain.Schedule,
	logger Logger,
) *Service {
	return &Service{
		fleetRepo:   fleetRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		schedule:    schedule,
		logger:      logger,
	}
}

// GetActiveBoats returns all ACTIVE boats ordered by id, through a
// short-TTL cache. Cache failures fall through to the store; staleness
// is bounded by the TTL, there is no invalidation on fleet changes.
func (s *Service) GetActiveBoats(ctx context.Context) ([]*domain.Boat, error) {
	var cached []*domain.Boat
	if err := s.cache.Get(ctx, cache.KeyActiveBoats, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("GetActiveBoats: cache read failed, falling back to store: %v", err)
	}

	boats, err := s.fleetRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBoats - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.Save(ctx, cache.KeyActiveBoats, boats, cache.TTLBoats); err != nil {
		s.logger.Warn("GetActiveBoats: cache write failed: %v", err)
	}

	return boats, nil
}

// CalculateBoatRotationIndex maps a wall-clock slot to a fleet index.
// Whole departure intervals elapsed since opening, modulo totalBoats,
// normalized so a slot before opening wraps backward through the list.
// Pure: same inputs, same index.
func (s *Service) CalculateBoatRotationIndex(hour, minute, totalBoats int) int {
	currentMinutes := hour*60 + minute
	slotsElapsed := floorDiv(currentMinutes-s.schedule.OpeningMinutes, s.schedule.IntervalMinutes)
	return ((slotsElapsed % totalBoats) + totalBoats) % totalBoats
}

// SelectBoatForSlot picks the boat for a departure slot. A forced boat
// id matching an active boat wins (staff override); otherwise rotation
// applies. Returns ErrNoActiveBoats when the fleet is empty.
func (s *Service) SelectBoatForSlot(ctx context.Context, hour, minute int, forcedBoatID *int64) (*BoatSelection, error) {
	boats, err := s.GetActiveBoats(ctx)
	if err != nil {
		return nil, err
	}

	if len(boats) == 0 {
		return nil, ErrNoActiveBoats
	}

	if forcedBoatID != nil {
		for i, boat := range boats {
			if boat.ID == *forcedBoatID {
				return &BoatSelection{Boat: boat, Index: i, Reason: ReasonForced}, nil
			}
		}
		s.logger.Warn("SelectBoatForSlot: forced boat id=%d not active, falling back to rotation", *forcedBoatID)
	}

	index := s.CalculateBoatRotationIndex(hour, minute, len(boats))
	return &BoatSelection{Boat: boats[index], Index: index, Reason: ReasonRotation}, nil
}

// GetSlotCapacity reports the raw occupancy of one boat over
// [startTime, endTime). No buffer: callers needing the admission policy
// go through the booking conflict check instead.
func (s *Service) GetSlotCapacity(ctx context.Context, boatID int64, startTime, endTime time.Time) (*SlotCapacity, error) {
	boat, err := s.fleetRepo.GetByID(ctx, boatID)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrBoatNotFound) {
			return nil, ErrBoatNotFound
		}
		return nil, fmt.Errorf("%w: GetSlotCapacity - load boat id=%d: %v", ErrInternal, boatID, err)
	}

	bookings, err := s.bookingRepo.FindOverlapping(ctx, domain.BookingWindowFilter{
		BoatID:      boatID,
		WindowStart: startTime,
		WindowEnd:   endTime,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotCapacity - load bookings: %v", ErrInternal, err)
	}

	occupancy := 0
	slotBookings := make([]SlotBooking, 0, len(bookings))
	for _, b := range bookings {
		occupancy += b.NumberOfPeople
		slotBookings = append(slotBookings, SlotBooking{
			ID:       b.ID,
			People:   b.NumberOfPeople,
			Language: b.Language,
		})
	}

	remaining := boat.Capacity - occupancy

	return &SlotCapacity{
		BoatID:            boat.ID,
		BoatName:          boat.Name,
		Capacity:          boat.Capacity,
		CurrentOccupancy:  occupancy,
		RemainingCapacity: remaining,
		CanAccommodate:    remaining > 0,
		Bookings:          slotBookings,
	}, nil
}

// GetFleetCapacityForSlot aggregates occupancy over the active fleet
func (s *Service) GetFleetCapacityForSlot(ctx context.Context, startTime, endTime time.Time) (*FleetCapacity, error) {
	boats, err := s.GetActiveBoats(ctx)
	if err != nil {
		return nil, err
	}

	result := &FleetCapacity{Boats: make([]FleetBoatCapacity, 0, len(boats))}
	totalOccupancy := 0

	for _, boat := range boats {
		slot, err := s.GetSlotCapacity(ctx, boat.ID, startTime, endTime)
		if err != nil {
			return nil, err
		}

		result.Boats = append(result.Boats, FleetBoatCapacity{
			ID:               boat.ID,
			Name:             boat.Name,
			Capacity:         boat.Capacity,
			CurrentOccupancy: slot.CurrentOccupancy,
		})
		result.TotalCapacity += boat.Capacity
		totalOccupancy += slot.CurrentOccupancy
	}

	result.AvailableCapacity = result.TotalCapacity - totalOccupancy
	return result, nil
}

// FindAvailableBoat searches for a boat able to seat peopleNeeded over
// the window. The preferred boat is tried first, but only when its
// existing occupants all share the requested language; then the active
// fleet in order. Returns ErrNoBoatAvailable when nothing fits.
func (s *Service) FindAvailableBoat(
	ctx context.Context,
	peopleNeeded int,
	startTime, endTime time.Time,
	preferredBoatID *int64,
	language string,
) (*AvailableBoat, error) {
	boats, err := s.GetActiveBoats(ctx)
	if err != nil {
		return nil, err
	}

	if preferredBoatID != nil {
		for _, boat := range boats {
			if boat.ID != *preferredBoatID {
				continue
			}

			slot, err := s.GetSlotCapacity(ctx, boat.ID, startTime, endTime)
			if err != nil {
				return nil, err
			}
			if slot.RemainingCapacity >= peopleNeeded && languageCompatible(slot.Bookings, language) {
				return &AvailableBoat{Boat: boat, RemainingCapacity: slot.RemainingCapacity}, nil
			}
		}
	}

	for _, boat := range boats {
		if preferredBoatID != nil && boat.ID == *preferredBoatID {
			continue // already tried
		}

		slot, err := s.GetSlotCapacity(ctx, boat.ID, startTime, endTime)
		if err != nil {
			return nil, err
		}
		if slot.RemainingCapacity >= peopleNeeded {
			return &AvailableBoat{Boat: boat, RemainingCapacity: slot.RemainingCapacity}, nil
		}
	}

	return nil, ErrNoBoatAvailable
}

func languageCompatible(bookings []SlotBooking, language string) bool {
	if language == "" || len(bookings) == 0 {
		return true
	}
	for _, b := range bookings {
		if b.Language != language {
			return false
		}
	}
	return true
}

// floorDiv divides rounding toward negative infinity, so slots before
// opening produce negative elapsed counts instead of truncating to zero
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
