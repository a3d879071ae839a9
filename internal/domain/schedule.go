package domain

// Window is an inclusive range of minutes-of-day during which
// departures are allowed.
type Window struct {
	StartMinutes int
	EndMinutes   int
}

// Contains returns true if the minute-of-day falls inside the window
func (w Window) Contains(minutesOfDay int) bool {
	return minutesOfDay >= w.StartMinutes && minutesOfDay <= w.EndMinutes
}

// Schedule carries the business constants of the tour operation.
// It is loaded from configuration and injected into the services, so
// alternate durations and prices are testable without recompilation.
type Schedule struct {
	TourDurationMinutes int // length of one tour
	BufferTimeMinutes   int // mandatory idle time between two tours on one boat
	IntervalMinutes     int // spacing between consecutive departures
	OpeningMinutes      int // first departure of the day, minutes-of-day

	MorningWindow   Window
	AfternoonWindow Window

	MinBookingDelayMinutes int // lead time required from non-staff bookers

	PriceAdult float64
	PriceChild float64
	PriceBaby  float64
}

// DefaultSchedule returns the production schedule: 25-minute tours,
// 5-minute buffers, departures every 10 minutes from 10:00, windows
// 10:00-11:45 and 13:30-17:45.
func DefaultSchedule() Schedule {
	return Schedule{
		TourDurationMinutes:    25,
		BufferTimeMinutes:      5,
		IntervalMinutes:        10,
		OpeningMinutes:         10 * 60,
		MorningWindow:          Window{StartMinutes: 600, EndMinutes: 705},
		AfternoonWindow:        Window{StartMinutes: 810, EndMinutes: 1065},
		MinBookingDelayMinutes: 30,
		PriceAdult:             9,
		PriceChild:             4,
		PriceBaby:              0,
	}
}

// IsWithinOperatingWindows returns true if the minute-of-day falls in
// the morning or afternoon departure window
func (s Schedule) IsWithinOperatingWindows(minutesOfDay int) bool {
	return s.MorningWindow.Contains(minutesOfDay) || s.AfternoonWindow.Contains(minutesOfDay)
}

// Price returns the flat linear price of a party
func (s Schedule) Price(adults, children, babies int) float64 {
	return float64(adults)*s.PriceAdult + float64(children)*s.PriceChild + float64(babies)*s.PriceBaby
}
