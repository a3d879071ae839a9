package get_availability

import (
	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/pkg/types"
)

// generateDepartureMinutes lists every departure of the day as
// minutes-of-day: both operating windows walked at the departure
// interval, window ends inclusive.
func generateDepartureMinutes(schedule domain.Schedule) []int {
	var minutes []int
	for _, w := range []domain.Window{schedule.MorningWindow, schedule.AfternoonWindow} {
		for m := w.StartMinutes; m <= w.EndMinutes; m += schedule.IntervalMinutes {
			minutes = append(minutes, m)
		}
	}
	return minutes
}

// departureTimes converts the grid to wall-clock time strings
func departureTimes(schedule domain.Schedule) ([]types.TimeString, error) {
	grid := generateDepartureMinutes(schedule)
	out := make([]types.TimeString, 0, len(grid))
	for _, m := range grid {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}
