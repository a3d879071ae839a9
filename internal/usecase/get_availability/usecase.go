package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/internal/infra/cache"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/fleet"
)

// UseCase computes the public departure grid of one day: every slot of
// the operating windows with its rotation boat and the seats left on
// the fleet. The grid is cached per day with a short TTL; booking
// writes invalidate the day's entry.
type UseCase struct {
	fleetService FleetService
	cache        Cache
	timeProvider TimeProvider
	schedule     domain.Schedule
	logger       Logger
}

// New creates the availability usecase
func New(fleetService FleetService, c Cache, timeProvider TimeProvider, schedule domain.Schedule, logger Logger) *UseCase {
	return &UseCase{
		fleetService: fleetService,
		cache:        c,
		timeProvider: timeProvider,
		schedule:     schedule,
		logger:       logger,
	}
}

// Execute returns the departure grid for the requested date
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if _, err := domain.ParisDayUTC(req.Date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	key := cache.AvailabilityKey(req.Date)
	var cached Response
	if err := uc.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		uc.logger.Warn("GetAvailability: cache read for %s: %v", req.Date, err)
	}

	resp, err := uc.build(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Save(ctx, key, resp, cache.TTLAvailability); err != nil {
		uc.logger.Warn("GetAvailability: cache write for %s: %v", req.Date, err)
	}

	return resp, nil
}

func (uc *UseCase) build(ctx context.Context, date string) (*Response, error) {
	boats, err := uc.fleetService.GetActiveBoats(ctx)
	if err != nil {
		if errors.Is(err, fleet.ErrNoActiveBoats) {
			return nil, ErrNoActiveBoats
		}
		return nil, fmt.Errorf("%w: get active boats: %v", ErrInternal, err)
	}
	if len(boats) == 0 {
		return nil, ErrNoActiveBoats
	}

	times, err := departureTimes(uc.schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: build departure grid: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	isToday := domain.ParisToday(now) == date
	nowHour, nowMinute := domain.ParisNowParts(now)
	nowMinutes := nowHour*60 + nowMinute
	duration := time.Duration(uc.schedule.TourDurationMinutes) * time.Minute

	slots := make([]Slot, 0, len(times))
	for _, startTime := range times {
		hour, minute, err := startTime.HourMinute()
		if err != nil {
			return nil, fmt.Errorf("%w: bad slot time %q: %v", ErrInternal, startTime, err)
		}

		wall, err := domain.ParseParisWallDate(date, startTime)
		if err != nil {
			return nil, fmt.Errorf("%w: resolve slot instant: %v", ErrInternal, err)
		}

		capacity, err := uc.fleetService.GetFleetCapacityForSlot(ctx, wall.Instant, wall.Instant.Add(duration))
		if err != nil {
			return nil, fmt.Errorf("%w: fleet capacity for %s: %v", ErrInternal, startTime, err)
		}

		index := uc.fleetService.CalculateBoatRotationIndex(hour, minute, len(boats))
		boat := boats[index]

		bookable := capacity.AvailableCapacity > 0
		if bookable && isToday {
			// Public bookers cannot take a departure inside the
			// minimum lead time; the day grid reflects that.
			lead := hour*60 + minute - nowMinutes
			if lead < uc.schedule.MinBookingDelayMinutes {
				bookable = false
			}
		}

		slots = append(slots, Slot{
			StartTime:         startTime,
			DurationMinutes:   uc.schedule.TourDurationMinutes,
			BoatID:            boat.ID,
			BoatName:          boat.Name,
			RemainingCapacity: capacity.AvailableCapacity,
			TotalCapacity:     capacity.TotalCapacity,
			Bookable:          bookable,
		})
	}

	uc.logger.Info("GetAvailability: %d slots for %s", len(slots), date)
	return &Response{Date: date, Slots: slots}, nil
}
